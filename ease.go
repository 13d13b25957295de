package bough

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// Ease maps normalized progress in [0, 1] to eased progress. Eases are pure;
// the renderer calls them once per element per frame.
type Ease func(t float64) float64

// EaseLinear is the identity ease and the default for transitions.
func EaseLinear(t float64) float64 {
	return t
}

// EaseFromTween adapts a gween easing function to the normalized [0, 1] form
// used by transitions.
func EaseFromTween(fn ease.TweenFunc) Ease {
	if fn == nil {
		return EaseLinear
	}
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Standard easing curves, backed by gween.
var (
	EaseInQuad       = EaseFromTween(ease.InQuad)
	EaseOutQuad      = EaseFromTween(ease.OutQuad)
	EaseInOutQuad    = EaseFromTween(ease.InOutQuad)
	EaseInCubic      = EaseFromTween(ease.InCubic)
	EaseOutCubic     = EaseFromTween(ease.OutCubic)
	EaseInOutCubic   = EaseFromTween(ease.InOutCubic)
	EaseInQuart      = EaseFromTween(ease.InQuart)
	EaseOutQuart     = EaseFromTween(ease.OutQuart)
	EaseInOutQuart   = EaseFromTween(ease.InOutQuart)
	EaseInQuint      = EaseFromTween(ease.InQuint)
	EaseOutQuint     = EaseFromTween(ease.OutQuint)
	EaseInOutQuint   = EaseFromTween(ease.InOutQuint)
	EaseInSine       = EaseFromTween(ease.InSine)
	EaseOutSine      = EaseFromTween(ease.OutSine)
	EaseInOutSine    = EaseFromTween(ease.InOutSine)
	EaseInExpo       = EaseFromTween(ease.InExpo)
	EaseOutExpo      = EaseFromTween(ease.OutExpo)
	EaseInOutExpo    = EaseFromTween(ease.InOutExpo)
	EaseInCirc       = EaseFromTween(ease.InCirc)
	EaseOutCirc      = EaseFromTween(ease.OutCirc)
	EaseInOutCirc    = EaseFromTween(ease.InOutCirc)
	EaseInBack       = EaseFromTween(ease.InBack)
	EaseOutBack      = EaseFromTween(ease.OutBack)
	EaseInOutBack    = EaseFromTween(ease.InOutBack)
	EaseInBounce     = EaseFromTween(ease.InBounce)
	EaseOutBounce    = EaseFromTween(ease.OutBounce)
	EaseInOutBounce  = EaseFromTween(ease.InOutBounce)
	EaseInElastic    = EaseFromTween(ease.InElastic)
	EaseOutElastic   = EaseFromTween(ease.OutElastic)
	EaseInOutElastic = EaseFromTween(ease.InOutElastic)
)

// easesByName backs EaseByName. Keys are lower-case.
var easesByName = map[string]Ease{
	"linear":       EaseLinear,
	"inquad":       EaseInQuad,
	"outquad":      EaseOutQuad,
	"inoutquad":    EaseInOutQuad,
	"incubic":      EaseInCubic,
	"outcubic":     EaseOutCubic,
	"inoutcubic":   EaseInOutCubic,
	"inquart":      EaseInQuart,
	"outquart":     EaseOutQuart,
	"inoutquart":   EaseInOutQuart,
	"inquint":      EaseInQuint,
	"outquint":     EaseOutQuint,
	"inoutquint":   EaseInOutQuint,
	"insine":       EaseInSine,
	"outsine":      EaseOutSine,
	"inoutsine":    EaseInOutSine,
	"inexpo":       EaseInExpo,
	"outexpo":      EaseOutExpo,
	"inoutexpo":    EaseInOutExpo,
	"incirc":       EaseInCirc,
	"outcirc":      EaseOutCirc,
	"inoutcirc":    EaseInOutCirc,
	"inback":       EaseInBack,
	"outback":      EaseOutBack,
	"inoutback":    EaseInOutBack,
	"inbounce":     EaseInBounce,
	"outbounce":    EaseOutBounce,
	"inoutbounce":  EaseInOutBounce,
	"inelastic":    EaseInElastic,
	"outelastic":   EaseOutElastic,
	"inoutelastic": EaseInOutElastic,
}

// EaseByName looks up a named ease. Matching ignores case, dashes and
// underscores, so "ease-out-cubic", "OutCubic" and "out_cubic" are all the
// same curve. An empty name returns EaseLinear.
func EaseByName(name string) (Ease, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	key = strings.TrimPrefix(key, "ease")
	if key == "" {
		return EaseLinear, nil
	}
	if fn, ok := easesByName[key]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
}

// EaseNames returns the registered ease names in sorted order.
func EaseNames() []string {
	names := make([]string, 0, len(easesByName))
	for name := range easesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CubicBezier returns an ease matching CSS cubic-bezier(x1, y1, x2, y2).
// The curve runs from (0,0) to (1,1); x1 and x2 are clamped to [0, 1] so the
// curve stays a function of t.
func CubicBezier(x1, y1, x2, y2 float64) Ease {
	x1 = clampUnit(x1)
	x2 = clampUnit(x2)
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		// x(u) is monotonic on [0,1] for clamped control points; bisect for u.
		lo, hi := 0.0, 1.0
		u := t
		for range 32 {
			x := bezierComponent(x1, x2, u)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x > t {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) / 2
		}
		return bezierComponent(y1, y2, u)
	}
}

func bezierComponent(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}
