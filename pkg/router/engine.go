package router

import (
	"github.com/justyntemme/swmx/pkg/dsp/gain"
	"github.com/justyntemme/swmx/pkg/dsp/pan"
)

// groupIO holds a group's resolved buffers for one block. nil means unconnected.
type groupIO struct {
	inL, inR, ctrl []float32
	destL, destR   [MaxDestinations][]float32
}

// levels is the per-block gain setup of a group: volume folded into the
// pan (or balance) gains.
type levels struct {
	stereo      StereoMode
	left, right float32
}

func newLevels(cfg GroupConfig) levels {
	vol := gain.VolumeToLinear(cfg.Volume)
	p := pan.Normalize(cfg.Pan)
	lv := levels{stereo: ClampStereoMode(int(cfg.Stereo))}
	if lv.stereo == StereoIndependent {
		lv.left, lv.right = pan.BalanceGains(p)
	} else {
		lv.left, lv.right = pan.MonoToStereo(p)
	}
	lv.left *= vol
	lv.right *= vol
	return lv
}

// route runs the per-sample loop for one group: read input, apply levels,
// advance the smoothed gains and accumulate into every audible destination.
func route(s *GroupState, io *groupIO, lv levels, rate float64, n int) {
	for i := 0; i < n; i++ {
		var sigL float32
		if io.inL != nil {
			sigL = io.inL[i]
		}
		sigR := sigL
		if io.inR != nil {
			sigR = io.inR[i]
		}

		var outL, outR float32
		if lv.stereo == StereoIndependent {
			outL = sigL * lv.left
			outR = sigR * lv.right
		} else {
			mono := (sigL + sigR) * 0.5
			outL = mono * lv.left
			outR = mono * lv.right
		}

		s.Advance(rate)

		for d := 0; d < s.numDests; d++ {
			g := float32(s.destGains[d])
			if g <= silenceFloor {
				continue
			}
			if dst := io.destL[d]; dst != nil {
				dst[i] += outL * g
			}
			if dst := io.destR[d]; dst != nil {
				dst[i] += outR * g
			}
		}
	}
}
