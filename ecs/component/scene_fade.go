package component

// FadePhase is the stage of a scene fade.
type FadePhase int

const (
	FadeNone FadePhase = iota
	FadeOut
	FadeDone
)

// SceneFade darkens the screen before a scene change request is handed to
// the game loop. Alpha runs from 0 to 1.
type SceneFade struct {
	Phase   FadePhase
	Alpha   float64
	Frames  int
	Timer   int
	Req     SceneChangeRequest
	ReqSent bool
}

var SceneFadeComponent = NewComponent[SceneFade]()
