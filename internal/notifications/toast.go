package notifications

import "time"

// Toast timing. The toast gets its show class after EnterDelay, loses it at
// HideAfter and is removed FadeDuration later.
const (
	EnterDelay   = 10 * time.Millisecond
	HideAfter    = 3000 * time.Millisecond
	FadeDuration = 300 * time.Millisecond
	Lifetime     = HideAfter + FadeDuration
)

// Phase is the lifecycle stage of a toast.
type Phase string

const (
	PhaseEntering Phase = "entering"
	PhaseShown    Phase = "shown"
	PhaseFading   Phase = "fading"
	PhaseRemoved  Phase = "removed"
)

// Toast is a transient message shown to one session.
type Toast struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// PhaseAt returns the phase of the toast at now.
func (t Toast) PhaseAt(now time.Time) Phase {
	elapsed := now.Sub(t.CreatedAt)
	switch {
	case elapsed < EnterDelay:
		return PhaseEntering
	case elapsed < HideAfter:
		return PhaseShown
	case elapsed < Lifetime:
		return PhaseFading
	default:
		return PhaseRemoved
	}
}

// View is what the notification fragment renders.
type View struct {
	Message string `json:"message"`
	Phase   Phase  `json:"phase"`
	Show    bool   `json:"show"`
	// RemainingMS is the time left until the toast is removed.
	RemainingMS int64 `json:"remaining_ms"`
}

// Present reports whether the toast element still exists.
func (v View) Present() bool {
	return v.Phase != "" && v.Phase != PhaseRemoved
}

func viewAt(t Toast, now time.Time) View {
	phase := t.PhaseAt(now)
	if phase == PhaseRemoved {
		return View{Phase: PhaseRemoved}
	}
	return View{
		Message:     t.Message,
		Phase:       phase,
		Show:        phase == PhaseShown,
		RemainingMS: t.CreatedAt.Add(Lifetime).Sub(now).Milliseconds(),
	}
}
