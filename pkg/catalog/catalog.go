// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"slices"
	"strings"
)

// Kind is the value type a telemetry item decodes to.
type Kind string

const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
)

// Unit tags a telemetry item with its physical unit. Informational only.
type Unit string

const (
	UnitAmpere   Unit = "A"
	UnitVolt     Unit = "V"
	UnitHertz    Unit = "Hz"
	UnitKilowatt Unit = "kW"
	UnitJoule    Unit = "J"
	UnitSecond   Unit = "s"
	UnitCelsius  Unit = "deg_C"
	UnitNone     Unit = "unitless"
)

// Entry maps one MIB object to a published telemetry field.
type Entry struct {
	MIBName    string `json:"mibName" yaml:"mibName"`
	PublicName string `json:"publicName" yaml:"publicName"`
	Kind       Kind   `json:"kind" yaml:"kind"`
	Unit       Unit   `json:"unit" yaml:"unit"`
}

// SystemDescription is the MIB name of the field set from the setup probe
// rather than from a poll.
const SystemDescription = "sysDescr"

var entries = map[string]Entry{
	// Schneider PM5xxx accumulated energy
	"aeActiveEDelivered":   {PublicName: "activeEnergyDelivered", Kind: KindFloat, Unit: UnitJoule},
	"aeApparentEDelivered": {PublicName: "apparentEnergyDelivered", Kind: KindFloat, Unit: UnitJoule},
	"aeReactiveEDelivered": {PublicName: "reactiveEnergyDelivered", Kind: KindFloat, Unit: UnitJoule},
	"aeResetDateTime":      {PublicName: "resetDateTime", Kind: KindString, Unit: UnitNone},

	// Synaccess PDU
	"currentDrawMax1":    {PublicName: "acMaxDraw", Kind: KindFloat, Unit: UnitAmpere},
	"currentDrawStatus1": {PublicName: "acCurrentDraw", Kind: KindFloat, Unit: UnitAmpere},
	"outletStatus":       {PublicName: "powerOutletStatus", Kind: KindInt, Unit: UnitNone},

	// Schneider PM5xxx measurements
	"fFrequency":            {PublicName: "systemFrequency", Kind: KindFloat, Unit: UnitHertz},
	"lcIC":                  {PublicName: "loadCurrentC", Kind: KindFloat, Unit: UnitAmpere},
	"lcIa":                  {PublicName: "loadCurrentA", Kind: KindFloat, Unit: UnitAmpere},
	"lcIb":                  {PublicName: "loadCurrentB", Kind: KindFloat, Unit: UnitAmpere},
	"lcIn":                  {PublicName: "neutralCurrent", Kind: KindFloat, Unit: UnitAmpere},
	"midSerialNumber":       {PublicName: "serialNumber", Kind: KindString, Unit: UnitNone},
	"pActivePa":             {PublicName: "activePowerA", Kind: KindFloat, Unit: UnitKilowatt},
	"pActivePb":             {PublicName: "activePowerB", Kind: KindFloat, Unit: UnitKilowatt},
	"pActivePc":             {PublicName: "activePowerC", Kind: KindFloat, Unit: UnitKilowatt},
	"pActivePtot":           {PublicName: "totalActivePower", Kind: KindFloat, Unit: UnitKilowatt},
	"pApparentPa":           {PublicName: "apparentPowerA", Kind: KindFloat, Unit: UnitKilowatt},
	"pApparentPb":           {PublicName: "apparentPowerB", Kind: KindFloat, Unit: UnitKilowatt},
	"pApparentPc":           {PublicName: "apparentPowerC", Kind: KindFloat, Unit: UnitKilowatt},
	"pApparentPtot":         {PublicName: "totalApparentPower", Kind: KindFloat, Unit: UnitKilowatt},
	"pReactivePa":           {PublicName: "reactivePowerA", Kind: KindFloat, Unit: UnitKilowatt},
	"pReactivePb":           {PublicName: "reactivePowerB", Kind: KindFloat, Unit: UnitKilowatt},
	"pReactivePc":           {PublicName: "reactivePowerC", Kind: KindFloat, Unit: UnitKilowatt},
	"pReactivePtot":         {PublicName: "totalReactivePower", Kind: KindFloat, Unit: UnitKilowatt},
	"pfPfDisplacementA":     {PublicName: "displacementPowerFactorA", Kind: KindFloat, Unit: UnitNone},
	"pfPfDisplacementB":     {PublicName: "displacementPowerFactorB", Kind: KindFloat, Unit: UnitNone},
	"pfPfDisplacementC":     {PublicName: "displacementPowerFactorC", Kind: KindFloat, Unit: UnitNone},
	"pfPfDisplacementTotal": {PublicName: "totalDisplacementPowerFactor", Kind: KindFloat, Unit: UnitNone},
	"pfPfa":                 {PublicName: "powerFactorA", Kind: KindFloat, Unit: UnitNone},
	"pfPfb":                 {PublicName: "powerFactorB", Kind: KindFloat, Unit: UnitNone},
	"pfPfc":                 {PublicName: "powerFactorC", Kind: KindFloat, Unit: UnitNone},
	"pfPftot":               {PublicName: "totalPowerFactor", Kind: KindFloat, Unit: UnitNone},
	"vVab":                  {PublicName: "measuredLineVoltageVab", Kind: KindFloat, Unit: UnitVolt},
	"vVan":                  {PublicName: "measuredLineVoltageVan", Kind: KindFloat, Unit: UnitVolt},
	"vVbc":                  {PublicName: "measuredLineVoltageVbc", Kind: KindFloat, Unit: UnitVolt},
	"vVbn":                  {PublicName: "measuredLineVoltageVbn", Kind: KindFloat, Unit: UnitVolt},
	"vVca":                  {PublicName: "measuredLineVoltageVca", Kind: KindFloat, Unit: UnitVolt},
	"vVcn":                  {PublicName: "measuredLineVoltageVcn", Kind: KindFloat, Unit: UnitVolt},

	// MIB-2 system group
	SystemDescription: {PublicName: "systemDescription", Kind: KindString, Unit: UnitNone},

	// Eaton XUPS
	"xupsBatCapacity":      {PublicName: "batteryCapacity", Kind: KindFloat, Unit: UnitNone},
	"xupsBatCurrent":       {PublicName: "batteryCurrent", Kind: KindFloat, Unit: UnitAmpere},
	"xupsBatTimeRemaining": {PublicName: "batteryTimeRemaining", Kind: KindFloat, Unit: UnitSecond},
	"xupsBatVoltage":       {PublicName: "batteryVoltage", Kind: KindFloat, Unit: UnitVolt},
	"xupsBatteryAbmStatus": {PublicName: "batteryAbmStatus", Kind: KindInt, Unit: UnitNone},
	"xupsBypassFrequency":  {PublicName: "bypassFrequency", Kind: KindFloat, Unit: UnitHertz},
	"xupsBypassTable":      {PublicName: "bypassTable", Kind: KindString, Unit: UnitNone},
	"xupsEnvAmbientTemp":   {PublicName: "envAmbientTemp", Kind: KindFloat, Unit: UnitCelsius},
	"xupsInputFrequency":   {PublicName: "inputFrequency", Kind: KindFloat, Unit: UnitHertz},
	"xupsInputTable":       {PublicName: "inputTable", Kind: KindString, Unit: UnitNone},
	"xupsInputVoltage":     {PublicName: "inputVoltage", Kind: KindFloat, Unit: UnitVolt},
	"xupsOutputFrequency":  {PublicName: "outputFrequency", Kind: KindFloat, Unit: UnitHertz},
	"xupsOutputLoad":       {PublicName: "outputLoad", Kind: KindFloat, Unit: UnitNone},
	"xupsOutputTable":      {PublicName: "outputTable", Kind: KindString, Unit: UnitNone},
}

var (
	sorted   []Entry
	byPublic map[string]Entry
)

func init() {
	sorted = make([]Entry, 0, len(entries))
	byPublic = make(map[string]Entry, len(entries))
	for name, e := range entries {
		e.MIBName = name
		entries[name] = e
		sorted = append(sorted, e)
		byPublic[e.PublicName] = e
	}
	slices.SortFunc(sorted, func(a, b Entry) int {
		return strings.Compare(a.MIBName, b.MIBName)
	})
}

// Lookup returns the entry for a MIB object name.
func Lookup(mibName string) (Entry, bool) {
	e, ok := entries[mibName]
	return e, ok
}

// ByPublicName returns the entry publishing the given field name.
func ByPublicName(name string) (Entry, bool) {
	e, ok := byPublic[name]
	return e, ok
}

// Entries returns all entries sorted by MIB name.
func Entries() []Entry {
	return slices.Clone(sorted)
}

// Len returns the number of catalog entries.
func Len() int {
	return len(entries)
}
