package exif

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display renders a field value without its unit
type Display struct {
	field *Field
}

// String implements fmt.Stringer
func (d Display) String() string {
	s, _ := formatValue(d.field)
	return s
}

// WithUnit returns a renderer that appends the unit of the value. Units
// may depend on other fields of x, e.g. XResolution on ResolutionUnit.
func (d Display) WithUnit(x *Exif) DisplayWithUnit {
	return DisplayWithUnit{field: d.field, exif: x}
}

// DisplayWithUnit renders a field value followed by its unit
type DisplayWithUnit struct {
	field *Field
	exif  *Exif
}

// String implements fmt.Stringer
func (d DisplayWithUnit) String() string {
	s, numeric := formatValue(d.field)
	if !numeric {
		return s
	}
	u, ok := units[d.field.Tag]
	if !ok {
		return s
	}
	return s + u(d.field, d.exif)
}

// formatter renders a value and reports whether it is a plain quantity
// that a unit can be appended to
type formatter func(v *Value) (string, bool)

func formatValue(f *Field) (string, bool) {
	if fn, ok := formatters[f.Tag]; ok {
		if s, numeric, ok := tryFormat(fn, &f.Value); ok {
			return s, numeric
		}
	}
	return formatDefault(&f.Value)
}

// tryFormat runs a tag formatter; an empty result falls back to the
// type-based rendering
func tryFormat(fn formatter, v *Value) (string, bool, bool) {
	s, numeric := fn(v)
	if s == "" {
		return "", false, false
	}
	return s, numeric, true
}

var formatters = map[Tag]formatter{
	TagCompression: enum(map[uint32]string{
		1: "uncompressed", 6: "JPEG",
	}),
	TagPhotometricInterpretation: enum(map[uint32]string{
		0: "white is zero", 1: "black is zero", 2: "RGB", 3: "palette color",
		4: "transparency mask", 6: "YCbCr",
	}),
	TagOrientation: enum(map[uint32]string{
		1: "row 0 at top and column 0 at left",
		2: "row 0 at top and column 0 at right",
		3: "row 0 at bottom and column 0 at right",
		4: "row 0 at bottom and column 0 at left",
		5: "row 0 at left and column 0 at top",
		6: "row 0 at right and column 0 at top",
		7: "row 0 at right and column 0 at bottom",
		8: "row 0 at left and column 0 at bottom",
	}),
	TagPlanarConfiguration: enum(map[uint32]string{
		1: "chunky", 2: "planar",
	}),
	TagResolutionUnit:           enum(resolutionUnits),
	TagFocalPlaneResolutionUnit: enum(resolutionUnits),
	TagYCbCrPositioning: enum(map[uint32]string{
		1: "centered", 2: "co-sited",
	}),
	TagExposureProgram: enum(map[uint32]string{
		0: "not defined", 1: "manual", 2: "normal program", 3: "aperture priority",
		4: "shutter priority", 5: "creative program", 6: "action program",
		7: "portrait mode", 8: "landscape mode",
	}),
	TagSensitivityType: enum(map[uint32]string{
		0: "unknown", 1: "SOS", 2: "REI", 3: "ISO speed", 4: "SOS/REI",
		5: "SOS/ISO speed", 6: "REI/ISO speed", 7: "SOS/REI/ISO speed",
	}),
	TagMeteringMode: enum(map[uint32]string{
		0: "unknown", 1: "average", 2: "center-weighted average", 3: "spot",
		4: "multi-spot", 5: "pattern", 6: "partial", 255: "other",
	}),
	TagLightSource: enum(map[uint32]string{
		0: "unknown", 1: "daylight", 2: "fluorescent", 3: "tungsten", 4: "flash",
		9: "fine weather", 10: "cloudy weather", 11: "shade",
		12: "daylight fluorescent", 13: "day white fluorescent",
		14: "cool white fluorescent", 15: "white fluorescent",
		16: "warm white fluorescent", 17: "standard light A",
		18: "standard light B", 19: "standard light C", 20: "D55", 21: "D65",
		22: "D75", 23: "D50", 24: "ISO studio tungsten", 255: "other",
	}),
	TagColorSpace: enum(map[uint32]string{
		1: "sRGB", 0xffff: "uncalibrated",
	}),
	TagSensingMethod: enum(map[uint32]string{
		1: "not defined", 2: "one-chip color area sensor",
		3: "two-chip color area sensor", 4: "three-chip color area sensor",
		5: "color sequential area sensor", 7: "trilinear sensor",
		8: "color sequential linear sensor",
	}),
	TagCustomRendered: enum(map[uint32]string{
		0: "normal process", 1: "custom process",
	}),
	TagExposureMode: enum(map[uint32]string{
		0: "auto exposure", 1: "manual exposure", 2: "auto bracket",
	}),
	TagWhiteBalance: enum(map[uint32]string{
		0: "auto white balance", 1: "manual white balance",
	}),
	TagSceneCaptureType: enum(map[uint32]string{
		0: "standard", 1: "landscape", 2: "portrait", 3: "night scene",
	}),
	TagGainControl: enum(map[uint32]string{
		0: "none", 1: "low gain up", 2: "high gain up", 3: "low gain down",
		4: "high gain down",
	}),
	TagContrast:   enum(levels("soft", "hard")),
	TagSaturation: enum(levels("low saturation", "high saturation")),
	TagSharpness:  enum(levels("soft", "hard")),
	TagSubjectDistanceRange: enum(map[uint32]string{
		0: "unknown", 1: "macro", 2: "close view", 3: "distant view",
	}),
	TagGPSAltitudeRef: enum(map[uint32]string{
		0: "above sea level", 1: "below sea level",
	}),
	TagGPSDifferential: enum(map[uint32]string{
		0: "no differential correction", 1: "differential correction applied",
	}),
	TagFileSource: undefinedEnum(map[byte]string{
		0: "others", 1: "transparency scanner", 2: "reflective scanner",
		3: "digital still camera",
	}),
	TagSceneType: undefinedEnum(map[byte]string{
		1: "directly photographed",
	}),

	TagXResolution:             decimal,
	TagYResolution:             decimal,
	TagFocalPlaneXResolution:   decimal,
	TagFocalPlaneYResolution:   decimal,
	TagCompressedBitsPerPixel:  decimal,
	TagShutterSpeedValue:       decimal,
	TagApertureValue:           decimal,
	TagBrightnessValue:         decimal,
	TagExposureBiasValue:       decimal,
	TagMaxApertureValue:        decimal,
	TagFocalLength:             decimal,
	TagExposureIndex:           decimal,
	TagDigitalZoomRatio:        decimal,
	TagGamma:                   decimal,
	TagLensSpecification:       decimal,
	TagGPSAltitude:             decimal,
	TagGPSDOP:                  decimal,
	TagGPSSpeed:                decimal,
	TagGPSTrack:                decimal,
	TagGPSImgDirection:         decimal,
	TagGPSDestBearing:          decimal,
	TagGPSDestDistance:         decimal,
	TagGPSHPositioningError:    decimal,
	TagExposureTime:            exposureTime,
	TagFNumber:                 fNumber,
	TagSubjectDistance:         subjectDistance,
	TagFlash:                   flash,
	TagDateTime:                dateTime,
	TagDateTimeOriginal:        dateTime,
	TagDateTimeDigitized:       dateTime,
	TagExifVersion:             version,
	TagFlashpixVersion:         version,
	TagInteroperabilityVersion: version,
	TagGPSVersionID:            dotted,
	TagComponentsConfiguration: components,
	TagGPSLatitude:             degMinSec,
	TagGPSLongitude:            degMinSec,
	TagGPSDestLatitude:         degMinSec,
	TagGPSDestLongitude:        degMinSec,
	TagGPSTimeStamp:            timeStamp,
	TagUserComment:             encodedText,
	TagGPSProcessingMethod:     encodedText,
	TagGPSAreaInformation:      encodedText,
}

var resolutionUnits = map[uint32]string{
	1: "no absolute unit", 2: "inch", 3: "cm",
}

func levels(low, high string) map[uint32]string {
	return map[uint32]string{0: "normal", 1: low, 2: high}
}

func enum(names map[uint32]string) formatter {
	return func(v *Value) (string, bool) {
		n, ok := v.Uint(0)
		if !ok {
			return "", false
		}
		if name, ok := names[n]; ok {
			return name, false
		}
		return fmt.Sprintf("unknown (%d)", n), false
	}
}

func undefinedEnum(names map[byte]string) formatter {
	return func(v *Value) (string, bool) {
		if v.Type != TypeUndefined || len(v.Undefined) == 0 {
			return "", false
		}
		if name, ok := names[v.Undefined[0]]; ok {
			return name, false
		}
		return fmt.Sprintf("unknown (%d)", v.Undefined[0]), false
	}
}

// floats returns the elements of a numeric value as float64
func floats(v *Value) ([]float64, bool) {
	var out []float64
	switch v.Type {
	case TypeRational:
		for _, r := range v.Rational {
			out = append(out, r.Float())
		}
	case TypeSRational:
		for _, r := range v.SRational {
			out = append(out, r.Float())
		}
	case TypeByte, TypeShort, TypeLong:
		for i := 0; i < v.Len(); i++ {
			n, _ := v.Uint(i)
			out = append(out, float64(n))
		}
	case TypeFloat:
		for _, f := range v.Float {
			out = append(out, float64(f))
		}
	case TypeDouble:
		out = append(out, v.Double...)
	default:
		return nil, false
	}
	return out, len(out) > 0
}

// formatFloat renders f with at most four fractional digits
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "undefined"
	}
	return strconv.FormatFloat(math.Round(f*1e4)/1e4, 'f', -1, 64)
}

// finite reports whether every value is a real number. Rationals with a
// zero denominator are not.
func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}

func decimal(v *Value) (string, bool) {
	fs, ok := floats(v)
	if !ok {
		return "", false
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = formatFloat(f)
	}
	return strings.Join(parts, ", "), finite(fs...)
}

func exposureTime(v *Value) (string, bool) {
	if v.Type != TypeRational || len(v.Rational) == 0 {
		return "", false
	}
	r := v.Rational[0]
	switch {
	case r.Denom == 0:
		return "undefined", false
	case r.Num == 0:
		return "0", true
	case r.Num >= r.Denom:
		return formatFloat(r.Float()), true
	default:
		return "1/" + formatFloat(float64(r.Denom)/float64(r.Num)), true
	}
}

func fNumber(v *Value) (string, bool) {
	s, ok := decimal(v)
	if !ok {
		return "", false
	}
	return "f/" + s, true
}

func subjectDistance(v *Value) (string, bool) {
	if v.Type == TypeRational && len(v.Rational) > 0 {
		switch v.Rational[0].Num {
		case 0:
			return "unknown", false
		case math.MaxUint32:
			return "infinity", false
		}
	}
	return decimal(v)
}

func flash(v *Value) (string, bool) {
	n, ok := v.Uint(0)
	if !ok {
		return "", false
	}

	var parts []string
	if n&0x01 != 0 {
		parts = append(parts, "fired")
	} else {
		parts = append(parts, "not fired")
	}
	switch (n >> 1) & 0x03 {
	case 2:
		parts = append(parts, "no return light detected")
	case 3:
		parts = append(parts, "return light detected")
	}
	switch (n >> 3) & 0x03 {
	case 1:
		parts = append(parts, "forced on")
	case 2:
		parts = append(parts, "forced off")
	case 3:
		parts = append(parts, "auto mode")
	}
	if n&0x20 != 0 {
		parts = append(parts, "no flash function")
	}
	if n&0x40 != 0 {
		parts = append(parts, "red-eye reduction")
	}
	return strings.Join(parts, ", "), false
}

// dateTime converts "YYYY:MM:DD HH:MM:SS" to "YYYY-MM-DD HH:MM:SS"
func dateTime(v *Value) (string, bool) {
	s, ok := v.AsString()
	if !ok || len(s) != 19 || s[4] != ':' || s[7] != ':' || s[10] != ' ' {
		return "", false
	}
	return s[0:4] + "-" + s[5:7] + "-" + s[8:10] + s[10:], false
}

// version renders "0230" as "2.30"
func version(v *Value) (string, bool) {
	var raw []byte
	switch v.Type {
	case TypeUndefined:
		raw = v.Undefined
	case TypeASCII:
		if s, ok := v.AsString(); ok {
			raw = []byte(s)
		}
	}
	if len(raw) != 4 {
		return "", false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	major := strings.TrimLeft(string(raw[:2]), "0")
	if major == "" {
		major = "0"
	}
	return major + "." + string(raw[2:]), false
}

func dotted(v *Value) (string, bool) {
	if v.Type != TypeByte || len(v.Byte) == 0 {
		return "", false
	}
	parts := make([]string, len(v.Byte))
	for i, b := range v.Byte {
		parts[i] = strconv.Itoa(int(b))
	}
	return strings.Join(parts, "."), false
}

func components(v *Value) (string, bool) {
	if v.Type != TypeUndefined || len(v.Undefined) == 0 {
		return "", false
	}
	names := []string{"_", "Y", "Cb", "Cr", "R", "G", "B"}
	var b strings.Builder
	for _, c := range v.Undefined {
		if int(c) < len(names) {
			b.WriteString(names[c])
		} else {
			b.WriteString("?")
		}
	}
	return b.String(), false
}

func degMinSec(v *Value) (string, bool) {
	if v.Type != TypeRational || len(v.Rational) != 3 {
		return "", false
	}
	d, m, s := v.Rational[0].Float(), v.Rational[1].Float(), v.Rational[2].Float()
	return fmt.Sprintf("%s deg %s min %s sec",
		formatFloat(d), formatFloat(m), formatFloat(s)), finite(d, m, s)
}

func timeStamp(v *Value) (string, bool) {
	if v.Type != TypeRational || len(v.Rational) != 3 {
		return "", false
	}
	h, m, s := v.Rational[0].Float(), v.Rational[1].Float(), v.Rational[2].Float()
	if !finite(h, m, s) {
		return "", false
	}
	sec := formatFloat(s)
	if s < 10 {
		sec = "0" + sec
	}
	return fmt.Sprintf("%02d:%02d:%s", int(h), int(m), sec), false
}

// encodedText decodes an UNDEFINED value that starts with an 8-byte
// character code
func encodedText(v *Value) (string, bool) {
	if v.Type != TypeUndefined || len(v.Undefined) < 8 {
		return "", false
	}
	code := strings.TrimRight(string(v.Undefined[:8]), "\x00")
	text := v.Undefined[8:]
	switch code {
	case "ASCII", "":
		return strconv.Quote(strings.TrimRight(string(text), "\x00 ")), false
	default:
		return fmt.Sprintf("charset=%s 0x%s", code, hex.EncodeToString(text)), false
	}
}

// formatDefault renders a value by its type
func formatDefault(v *Value) (string, bool) {
	switch v.Type {
	case TypeASCII:
		parts := make([]string, len(v.ASCII))
		for i, s := range v.ASCII {
			parts[i] = strconv.Quote(s)
		}
		return strings.Join(parts, ", "), false
	case TypeUndefined:
		return "0x" + hex.EncodeToString(v.Undefined), false
	case TypeRational:
		parts := make([]string, len(v.Rational))
		for i, r := range v.Rational {
			parts[i] = fmt.Sprintf("%d/%d", r.Num, r.Denom)
		}
		return strings.Join(parts, ", "), true
	case TypeSRational:
		parts := make([]string, len(v.SRational))
		for i, r := range v.SRational {
			parts[i] = fmt.Sprintf("%d/%d", r.Num, r.Denom)
		}
		return strings.Join(parts, ", "), true
	case TypeByte, TypeShort, TypeLong:
		parts := make([]string, v.Len())
		for i := range parts {
			n, _ := v.Uint(i)
			parts[i] = strconv.FormatUint(uint64(n), 10)
		}
		return strings.Join(parts, ", "), true
	case TypeSByte:
		return joinInts(len(v.SByte), func(i int) int64 { return int64(v.SByte[i]) }), true
	case TypeSShort:
		return joinInts(len(v.SShort), func(i int) int64 { return int64(v.SShort[i]) }), true
	case TypeSLong:
		return joinInts(len(v.SLong), func(i int) int64 { return int64(v.SLong[i]) }), true
	case TypeFloat, TypeDouble:
		fs, _ := floats(v)
		parts := make([]string, len(fs))
		for i, f := range fs {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, ", "), true
	default:
		return fmt.Sprintf("unknown value (type=%d, count=%d)", v.Type, v.UnknownCount), false
	}
}

func joinInts(n int, at func(int) int64) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.FormatInt(at(i), 10)
	}
	return strings.Join(parts, ", ")
}
