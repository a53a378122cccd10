package exif

// unit returns the suffix appended to a rendered quantity
type unit func(f *Field, x *Exif) string

func fixed(s string) unit {
	return func(*Field, *Exif) string { return s }
}

var units = map[Tag]unit{
	TagImageWidth:            fixed(" pixels"),
	TagImageLength:           fixed(" pixels"),
	TagPixelXDimension:       fixed(" pixels"),
	TagPixelYDimension:       fixed(" pixels"),
	TagExposureTime:          fixed(" s"),
	TagShutterSpeedValue:     fixed(" EV"),
	TagApertureValue:         fixed(" EV"),
	TagBrightnessValue:       fixed(" EV"),
	TagExposureBiasValue:     fixed(" EV"),
	TagMaxApertureValue:      fixed(" EV"),
	TagSubjectDistance:       fixed(" m"),
	TagFocalLength:           fixed(" mm"),
	TagFocalLengthIn35mmFilm: fixed(" mm"),
	TagFlashEnergy:           fixed(" BCPS"),
	TagGPSHPositioningError:  fixed(" m"),

	TagXResolution:           resolution(TagResolutionUnit),
	TagYResolution:           resolution(TagResolutionUnit),
	TagFocalPlaneXResolution: resolution(TagFocalPlaneResolutionUnit),
	TagFocalPlaneYResolution: resolution(TagFocalPlaneResolutionUnit),

	TagGPSLatitude:      reference(TagGPSLatitudeRef, nil),
	TagGPSLongitude:     reference(TagGPSLongitudeRef, nil),
	TagGPSDestLatitude:  reference(TagGPSDestLatitudeRef, nil),
	TagGPSDestLongitude: reference(TagGPSDestLongitudeRef, nil),
	TagGPSSpeed: reference(TagGPSSpeedRef, map[string]string{
		"K": "km/h", "M": "mph", "N": "knots",
	}),
	TagGPSTrack:        reference(TagGPSTrackRef, bearingRefs),
	TagGPSImgDirection: reference(TagGPSImgDirectionRef, bearingRefs),
	TagGPSDestBearing:  reference(TagGPSDestBearingRef, bearingRefs),
	TagGPSDestDistance: reference(TagGPSDestDistanceRef, map[string]string{
		"K": "km", "M": "mi", "N": "nmi",
	}),
	TagGPSAltitude: altitude,
}

var bearingRefs = map[string]string{
	"T": "degrees true", "M": "degrees magnetic",
}

// resolution renders "pixels per <unit>" from the sibling unit field.
// A missing unit field means inches.
func resolution(unitTag Tag) unit {
	return func(f *Field, x *Exif) string {
		n := uint32(2)
		if x != nil {
			if u, ok := x.GetField(unitTag, f.IFDNum); ok {
				if v, ok := u.Value.Uint(0); ok {
					n = v
				}
			}
		}
		switch n {
		case 2:
			return " pixels per inch"
		case 3:
			return " pixels per centimeter"
		default:
			return ""
		}
	}
}

// reference appends the single-letter reference field, optionally
// translated through names
func reference(refTag Tag, names map[string]string) unit {
	return func(f *Field, x *Exif) string {
		if x == nil {
			return ""
		}
		ref, ok := x.GetField(refTag, f.IFDNum)
		if !ok {
			return ""
		}
		s, ok := ref.Value.AsString()
		if !ok || s == "" {
			return ""
		}
		if names == nil {
			return " " + s
		}
		if name, ok := names[s]; ok {
			return " " + name
		}
		return ""
	}
}

// altitude reads GPSAltitudeRef; a missing reference means above sea level
func altitude(f *Field, x *Exif) string {
	below := false
	if x != nil {
		if ref, ok := x.GetField(TagGPSAltitudeRef, f.IFDNum); ok {
			if v, ok := ref.Value.Uint(0); ok && v == 1 {
				below = true
			}
		}
	}
	if below {
		return " m below sea level"
	}
	return " m above sea level"
}
