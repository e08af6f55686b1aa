package swmx

import (
	"fmt"

	"github.com/justyntemme/swmx/pkg/framework/bus"
	"github.com/justyntemme/swmx/pkg/framework/param"
	"github.com/justyntemme/swmx/pkg/router"
)

// Global parameter IDs. Group parameters use groupBase(g) + offset.
const (
	ParamBypass uint32 = iota
	ParamGlobalFade
)

const (
	offInputL uint32 = iota
	offInputR
	offControl
	offVolume
	offPan
	offMode
	offCurve
	offFade
	offCrossfade
	offActiveDest
	offStereo
	offMidiEnable
	offMidiChannel
	offMidiCC
	offDestL // destination d uses offDestL + 2d and offDestL + 2d + 1

	groupStride uint32 = 100
)

// Defaults that are not derived from the group index.
const (
	DefaultGlobalFade = 1
	DefaultVolume     = 100
)

func groupBase(g int) uint32 {
	return groupStride * uint32(g+1)
}

// GroupKey returns the key of a group parameter, e.g. GroupKey(0, "volume") is "g1.volume".
func GroupKey(g int, name string) string {
	return fmt.Sprintf("g%d.%s", g+1, name)
}

// DestKey returns the key of a destination bus parameter, e.g. "g1.dest2.l".
func DestKey(g, d int, right bool) string {
	side := "l"
	if right {
		side = "r"
	}
	return GroupKey(g, fmt.Sprintf("dest%d.%s", d+1, side))
}

// DefaultInput returns the default left input bus of group g.
func DefaultInput(g int) int {
	return min(1+2*g, bus.InputCount)
}

// DefaultDest returns the default output bus of destination d of group g.
// Only the first two destinations are connected by default.
func DefaultDest(g, d int, right bool) int {
	if d >= 2 {
		return 0
	}
	n := bus.FirstOutput + 4*g + 2*d
	if right {
		n++
	}
	if n > bus.Count {
		return 0
	}
	return n
}

// groupParams holds the parameter handles of one group so a config snapshot
// needs no lookups.
type groupParams struct {
	inputL, inputR, control *param.Parameter
	volume, pan             *param.Parameter
	mode, curve, fade       *param.Parameter
	crossfade, activeDest   *param.Parameter
	stereo                  *param.Parameter
	destL, destR            [router.MaxDestinations]*param.Parameter
	midiEnable              *param.Parameter
	midiChannel, midiCC     *param.Parameter
}

func (p *groupParams) config() router.GroupConfig {
	cfg := router.GroupConfig{
		InputL:     p.inputL.Value(),
		InputR:     p.inputR.Value(),
		Control:    p.control.Value(),
		Volume:     p.volume.Value(),
		Pan:        p.pan.Value(),
		Mode:       router.ControlMode(p.mode.Value()),
		Curve:      router.Curve(p.curve.Value()),
		Fade:       p.fade.Value(),
		Crossfade:  p.crossfade.Bool(),
		ActiveDest: p.activeDest.Value(),
		Stereo:     router.StereoMode(p.stereo.Value()),
		Midi: router.MidiConfig{
			Enabled: p.midiEnable.Bool(),
			Channel: p.midiChannel.Value(),
			CC:      p.midiCC.Value(),
		},
	}
	for d := range p.destL {
		if p.destL[d] != nil {
			cfg.DestL[d] = p.destL[d].Value()
			cfg.DestR[d] = p.destR[d].Value()
		}
	}
	return cfg
}

// params returns the group's parameters in display order.
func (p *groupParams) params(numDests int) []*param.Parameter {
	list := []*param.Parameter{
		p.inputL, p.inputR, p.control,
		p.volume, p.pan,
		p.mode, p.curve, p.fade, p.crossfade, p.activeDest, p.stereo,
	}
	for d := 0; d < numDests; d++ {
		list = append(list, p.destL[d], p.destR[d])
	}
	return append(list, p.midiEnable, p.midiChannel, p.midiCC)
}

func newGroupParams(g, numDests int) *groupParams {
	base := groupBase(g)
	id := func(off uint32) uint32 { return base + off }
	key := func(name string) string { return GroupKey(g, name) }

	p := &groupParams{
		inputL:  param.BusParameter(id(offInputL), key("input_l"), "Input L", bus.Count, DefaultInput(g)).Build(),
		inputR:  param.BusParameter(id(offInputR), key("input_r"), "Input R", bus.Count, 0).Build(),
		control: param.BusParameter(id(offControl), key("control"), "Control", bus.Count, 0).Build(),
		volume:  param.VolumeParameter(id(offVolume), key("volume"), "Volume").Build(),
		pan:     param.PanParameter(id(offPan), key("pan"), "Pan").Build(),
		mode: param.Choice(id(offMode), key("ctrl_type"), "Ctrl Type",
			router.ModeNames(), int(router.ModeUnipolar)).Build(),
		curve: param.Choice(id(offCurve), key("curve"), "Curve",
			router.CurveNames(), int(router.CurveEqualPower)).Build(),
		fade: param.Integer(id(offFade), key("fade"), "Fade", router.FadeMin, router.FadeMax, 0).
			Formatter(fadeFormatter, nil).Build(),
		crossfade:  param.Switch(id(offCrossfade), key("crossfade"), "Crossfade", true).Build(),
		activeDest: param.Integer(id(offActiveDest), key("active_dest"), "Active Dest", 1, numDests, 1).Build(),
		stereo: param.Choice(id(offStereo), key("stereo"), "Stereo",
			router.StereoModeNames(), int(router.StereoSum)).Build(),
		midiEnable:  param.Switch(id(offMidiEnable), key("midi_enable"), "MIDI Enable", false).Build(),
		midiChannel: param.Integer(id(offMidiChannel), key("midi_channel"), "MIDI Channel", 1, 16, 1).Build(),
		midiCC:      param.Integer(id(offMidiCC), key("midi_cc"), "MIDI CC", 0, 127, g).Build(),
	}
	for d := 0; d < numDests; d++ {
		off := offDestL + 2*uint32(d)
		p.destL[d] = param.BusParameter(id(off), DestKey(g, d, false),
			fmt.Sprintf("Dest %d L", d+1), bus.Count, DefaultDest(g, d, false)).Build()
		p.destR[d] = param.BusParameter(id(off+1), DestKey(g, d, true),
			fmt.Sprintf("Dest %d R", d+1), bus.Count, DefaultDest(g, d, true)).Build()
	}
	return p
}

// fadeFormatter shows the fade amount with its duration; 0 defers to the
// global fade.
func fadeFormatter(v int) string {
	if v == 0 {
		return "Global"
	}
	return fadeSeconds(v)
}

func globalFadeFormatter(v int) string {
	if v == 0 {
		return "Off"
	}
	return fadeSeconds(v)
}

func fadeSeconds(v int) string {
	return fmt.Sprintf("%d (%.1f s, settles in %.1f s)",
		v, router.FadeSeconds(v), router.SettleSeconds(v, router.DefaultSampleRate))
}
