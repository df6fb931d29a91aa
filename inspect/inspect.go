// Package inspect builds read-only reports over finalized type
// registries, shaped for CLI display and machine output.
package inspect

import (
	"fmt"

	"github.com/teranos/paramspace/param"
)

// ParamInfo describes one parameter of a type.
type ParamInfo struct {
	Name    string `json:"name" yaml:"name"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	Missing bool   `json:"missing" yaml:"missing"`
	Owner   string `json:"owner,omitempty" yaml:"owner,omitempty"` // protection owner, if protected
}

// ProtectionInfo describes one protected attribute and its owner.
type ProtectionInfo struct {
	Name  string `json:"name" yaml:"name"`
	Owner string `json:"owner" yaml:"owner"`
}

// TypeReport is a snapshot of a type's merged registries.
type TypeReport struct {
	Name      string           `json:"name" yaml:"name"`
	Bases     []string         `json:"bases,omitempty" yaml:"bases,omitempty"`
	MRO       []string         `json:"mro" yaml:"mro"`
	Params    []ParamInfo      `json:"params" yaml:"params"`
	Protected []ProtectionInfo `json:"protected" yaml:"protected"`
	Slots     []string         `json:"slots,omitempty" yaml:"slots,omitempty"`
}

// Report builds a TypeReport from a finalized type.
func Report(t *param.Type) *TypeReport {
	report := &TypeReport{Name: t.Name()}

	for _, base := range t.Bases() {
		report.Bases = append(report.Bases, base.Name())
	}
	for _, node := range t.MRO() {
		report.MRO = append(report.MRO, node.Name())
	}

	for _, name := range t.Params() {
		info := ParamInfo{Name: name}
		if def, ok := t.Default(name); ok {
			if def == param.Missing {
				info.Missing = true
			} else {
				info.Default = fmt.Sprintf("%v", def)
			}
		}
		if owner, ok := t.ProtectionOwner(name); ok {
			info.Owner = ownerLabel(owner)
		}
		report.Params = append(report.Params, info)
	}

	for _, name := range t.ProtectedNames() {
		owner, _ := t.ProtectionOwner(name)
		report.Protected = append(report.Protected, ProtectionInfo{
			Name:  name,
			Owner: ownerLabel(owner),
		})
	}

	report.Slots = t.Slots()
	return report
}

func ownerLabel(owner *param.Type) string {
	if owner == nil {
		return param.RootProtection
	}
	return owner.Name()
}
