package router

import (
	"github.com/justyntemme/swmx/pkg/dsp/slew"
)

// Fade amount range and its mapping to seconds.
const (
	FadeMin = 0
	FadeMax = 10

	maxFadeSeconds = 5.0
)

// Supported sample rates. Anything else resolves to DefaultSampleRate.
const (
	DefaultSampleRate = 48000
)

var supportedRates = [...]int{44100, 48000, 88200, 96000}

// SupportedSampleRates returns the rates the mixer accepts as-is.
func SupportedSampleRates() []int {
	return supportedRates[:]
}

// ResolveSampleRate returns hz if it is supported and DefaultSampleRate otherwise.
func ResolveSampleRate(hz int) int {
	for _, r := range supportedRates {
		if r == hz {
			return hz
		}
	}
	return DefaultSampleRate
}

// EffectiveFade picks the group's fade amount when it is nonzero and the
// global default otherwise, clamped to [FadeMin, FadeMax].
func EffectiveFade(local, global int) int {
	if local != 0 {
		return clampInt(local, FadeMin, FadeMax)
	}
	return clampInt(global, FadeMin, FadeMax)
}

// FadeSeconds maps a fade amount linearly onto 0..5 seconds.
func FadeSeconds(amount int) float64 {
	return float64(clampInt(amount, FadeMin, FadeMax)) / FadeMax * maxFadeSeconds
}

// settleLevel is the residual that counts as a finished fade (-60 dB).
const settleLevel = 0.001

// SettleSeconds returns how long a fade of amount takes to get within -60 dB
// of its target at sampleRate.
func SettleSeconds(amount, sampleRate int) float64 {
	sampleRate = ResolveSampleRate(sampleRate)
	n := slew.SamplesToSettle(SlewRate(true, amount, sampleRate), settleLevel)
	return float64(n) / float64(sampleRate)
}

// SlewRate returns the per-sample smoothing coefficient for one block.
// A disabled crossfade or a zero fade snaps in one sample.
func SlewRate(crossfade bool, fadeAmount int, sampleRate int) float64 {
	if !crossfade || fadeAmount <= FadeMin {
		return slew.Instant
	}
	return slew.Coefficient(float64(sampleRate), FadeSeconds(fadeAmount))
}
