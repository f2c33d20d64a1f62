package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const tick = float32(1.0 / 60)

type Action struct {
	nexts    []func(v *Viewer)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// next chains t after a; the returned Action configures t.
func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	a.nexts = append(a.nexts,
		func(v *Viewer) {
			v.Tweens[t] = *action
		})
	return action
}

func (v *Viewer) updateTweens() {
	for t, a := range v.Tweens {
		curr, finished := t.Update(tick)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(v)
			}
			delete(v.Tweens, t)
		}
	}
}

// flashBadge fades the "new" badge in, then slowly out.
func (v *Viewer) flashBadge() {
	for t := range v.Tweens {
		delete(v.Tweens, t)
	}
	set := func(alpha float32) { v.Hud.badge = float64(alpha) }

	in := gween.New(float32(v.Hud.badge), 1, 0.15, ease.OutQuad)
	first := Action{onChange: set}
	out := first.next(gween.New(1, 0, 1.2, ease.InQuad))
	out.onChange = set
	out.addOnFinish(func() { v.Hud.badge = 0 })
	v.Tweens[in] = first
}
