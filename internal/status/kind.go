// internal/status/kind.go
package status

import (
	"fmt"
	"sort"
	"strings"
)

// Kind indexes one raw status signal of the controller.
// Order is the order of the status input block on the I/O link.
type Kind int

const (
	AlarmMajor Kind = iota
	AlarmMinor
	AlarmSystem
	AlarmUser
	Error
	Play
	Teach
	Remote
	Operating
	Hold
	ServoOn
	EStopExternal
	EStopPendant
	EStopController
	WaitingExternal
	EcoMode

	// PFL kinds exist only on collaborative hardware.
	PflStop
	PflEscape
	PflAvoiding
	PflAvoidJoint
	PflAvoidTrans

	// KindCount is the size of a Snapshot, not a signal.
	KindCount
)

var kindNames = [KindCount]string{
	"alarm_major", "alarm_minor", "alarm_system", "alarm_user", "error",
	"play", "teach", "remote", "operating", "hold", "servo_on",
	"estop_external", "estop_pendant", "estop_controller",
	"waiting_external", "eco_mode",
	"pfl_stop", "pfl_escape", "pfl_avoiding", "pfl_avoid_joint", "pfl_avoid_trans",
}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ---- HARDWARE VARIANTS ----

// Variant describes one supported controller hardware family.
// It is selected once at startup.
type Variant struct {
	Name      string
	MaxGroups int
	Pfl       bool
}

// Kinds returns how many status kinds this variant exposes.
// The first Kinds() entries of the enumeration are read; the rest stay false.
func (v Variant) Kinds() int {
	if v.Pfl {
		return int(KindCount)
	}
	return int(PflStop)
}

var variants = map[string]Variant{
	"dx100":    {Name: "dx100", MaxGroups: 3},
	"dx200":    {Name: "dx200", MaxGroups: 4},
	"fs100":    {Name: "fs100", MaxGroups: 4},
	"yrc1000":  {Name: "yrc1000", MaxGroups: 4, Pfl: true},
	"yrc1000u": {Name: "yrc1000u", MaxGroups: 4, Pfl: true},
	"micro":    {Name: "yrc1000u", MaxGroups: 4, Pfl: true},
}

// LookupVariant resolves a configured hardware family name.
func LookupVariant(name string) (Variant, error) {
	v, ok := variants[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Variant{}, fmt.Errorf("status: unknown controller variant %q (known: %s)", name, strings.Join(VariantNames(), ", "))
	}
	return v, nil
}

// VariantNames lists accepted variant names, sorted.
func VariantNames() []string {
	out := make([]string, 0, len(variants))
	for k := range variants {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
