package ast

import (
	"time"
)

// Space is the spatial phrase of a tree.
type Space struct {
	CoordSys
	Geometry   Geometry
	Unit       string
	Error      []float64
	Resolution []float64
	Size       []float64
	PixSize    []float64
}

// TimeScale is the time scale of a Time phrase.
type TimeScale string

const (
	TimeScaleTT  TimeScale = "TT"
	TimeScaleTDT TimeScale = "TDT"
	TimeScaleET  TimeScale = "ET"
	TimeScaleTAI TimeScale = "TAI"
	TimeScaleIAT TimeScale = "IAT"
	TimeScaleUTC TimeScale = "UTC"
	TimeScaleTEB TimeScale = "TEB"
	TimeScaleTDB TimeScale = "TDB"
	TimeScaleTCG TimeScale = "TCG"
	TimeScaleTCB TimeScale = "TCB"
	TimeScaleLST TimeScale = "LST"
	TimeScaleNil TimeScale = "nil"
)

// TimeScales lists every time scale.
var TimeScales = []TimeScale{
	TimeScaleTT, TimeScaleTDT, TimeScaleET, TimeScaleTAI, TimeScaleIAT, TimeScaleUTC,
	TimeScaleTEB, TimeScaleTDB, TimeScaleTCG, TimeScaleTCB, TimeScaleLST, TimeScaleNil,
}

// LookupTimeScale resolves a time scale token.
func LookupTimeScale(token string) (TimeScale, bool) {
	for _, s := range TimeScales {
		if string(s) == token {
			return s, true
		}
	}
	return "", false
}

// TimeKind is the keyword that introduced a Time phrase.
type TimeKind string

const (
	TimeKindInstant   TimeKind = "Time"
	TimeKindInterval  TimeKind = "TimeInterval"
	TimeKindStartTime TimeKind = "StartTime"
	TimeKindStopTime  TimeKind = "StopTime"
)

// Arity is the number of values a phrase of this kind carries when it
// carries any.
func (k TimeKind) Arity() int {
	if k == TimeKindInterval {
		return 2
	}
	return 1
}

// TimeFormat says how a time value was written.
type TimeFormat string

const (
	TimeFormatISO TimeFormat = "ISO"
	TimeFormatMJD TimeFormat = "MJD"
	TimeFormatJD  TimeFormat = "JD"
)

// TimeValue is one instant. ISO is set for TimeFormatISO, Number otherwise.
type TimeValue struct {
	Format TimeFormat
	ISO    time.Time
	Number float64
}

// Time is the temporal phrase of a tree.
type Time struct {
	Kind       TimeKind
	Scale      TimeScale
	RefPos     RefPos
	Values     []TimeValue
	Unit       string
	Error      []float64
	Resolution []float64
	PixSize    []float64
}

// SpectralKind is the keyword that introduced a Spectral phrase.
type SpectralKind string

const (
	SpectralKindValue    SpectralKind = "Spectral"
	SpectralKindInterval SpectralKind = "SpectralInterval"
)

// Spectral is the spectral phrase of a tree.
type Spectral struct {
	Kind       SpectralKind
	RefPos     RefPos
	Values     []float64
	Unit       string
	Error      []float64
	Resolution []float64
}

// RedshiftKind is the keyword that introduced a Redshift phrase.
type RedshiftKind string

const (
	RedshiftKindValue    RedshiftKind = "Redshift"
	RedshiftKindInterval RedshiftKind = "RedshiftInterval"
)

// RedshiftType distinguishes velocities from dimensionless redshifts.
type RedshiftType string

const (
	RedshiftTypeVelocity RedshiftType = "VELOCITY"
	RedshiftTypeRedshift RedshiftType = "REDSHIFT"
)

// DopplerDefinition is the convention relating velocity and frequency shift.
type DopplerDefinition string

const (
	DopplerOptical      DopplerDefinition = "OPTICAL"
	DopplerRadio        DopplerDefinition = "RADIO"
	DopplerRelativistic DopplerDefinition = "RELATIVISTIC"
)

// Redshift is the redshift phrase of a tree.
type Redshift struct {
	Kind       RedshiftKind
	RefPos     RefPos
	Type       RedshiftType
	Doppler    DopplerDefinition
	Values     []float64
	Unit       string
	Error      []float64
	Resolution []float64
}
