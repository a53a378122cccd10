package exif

import "fmt"

// Context is the directory kind a tag number is interpreted in
type Context int

const (
	ContextTiff Context = iota
	ContextExif
	ContextGPS
	ContextInterop
)

// String returns the string representation of Context
func (c Context) String() string {
	switch c {
	case ContextTiff:
		return "Tiff"
	case ContextExif:
		return "Exif"
	case ContextGPS:
		return "Gps"
	case ContextInterop:
		return "Interop"
	default:
		return "Unknown"
	}
}

// Tag identifies a field. The same number means different things in
// different contexts, so both are part of the identity.
type Tag struct {
	Context Context
	Number  uint16
}

// Known tags
var (
	// TIFF / IFD0 and IFD1
	TagImageWidth                  = Tag{ContextTiff, 0x0100}
	TagImageLength                 = Tag{ContextTiff, 0x0101}
	TagBitsPerSample               = Tag{ContextTiff, 0x0102}
	TagCompression                 = Tag{ContextTiff, 0x0103}
	TagPhotometricInterpretation   = Tag{ContextTiff, 0x0106}
	TagImageDescription            = Tag{ContextTiff, 0x010e}
	TagMake                        = Tag{ContextTiff, 0x010f}
	TagModel                       = Tag{ContextTiff, 0x0110}
	TagStripOffsets                = Tag{ContextTiff, 0x0111}
	TagOrientation                 = Tag{ContextTiff, 0x0112}
	TagSamplesPerPixel             = Tag{ContextTiff, 0x0115}
	TagRowsPerStrip                = Tag{ContextTiff, 0x0116}
	TagStripByteCounts             = Tag{ContextTiff, 0x0117}
	TagXResolution                 = Tag{ContextTiff, 0x011a}
	TagYResolution                 = Tag{ContextTiff, 0x011b}
	TagPlanarConfiguration         = Tag{ContextTiff, 0x011c}
	TagResolutionUnit              = Tag{ContextTiff, 0x0128}
	TagTransferFunction            = Tag{ContextTiff, 0x012d}
	TagSoftware                    = Tag{ContextTiff, 0x0131}
	TagDateTime                    = Tag{ContextTiff, 0x0132}
	TagArtist                      = Tag{ContextTiff, 0x013b}
	TagWhitePoint                  = Tag{ContextTiff, 0x013e}
	TagPrimaryChromaticities       = Tag{ContextTiff, 0x013f}
	TagJPEGInterchangeFormat       = Tag{ContextTiff, 0x0201}
	TagJPEGInterchangeFormatLength = Tag{ContextTiff, 0x0202}
	TagYCbCrCoefficients           = Tag{ContextTiff, 0x0211}
	TagYCbCrSubSampling            = Tag{ContextTiff, 0x0212}
	TagYCbCrPositioning            = Tag{ContextTiff, 0x0213}
	TagReferenceBlackWhite         = Tag{ContextTiff, 0x0214}
	TagCopyright                   = Tag{ContextTiff, 0x8298}
	TagExifIFDPointer              = Tag{ContextTiff, 0x8769}
	TagGPSInfoIFDPointer           = Tag{ContextTiff, 0x8825}

	// Exif sub-IFD
	TagExposureTime             = Tag{ContextExif, 0x829a}
	TagFNumber                  = Tag{ContextExif, 0x829d}
	TagExposureProgram          = Tag{ContextExif, 0x8822}
	TagSpectralSensitivity      = Tag{ContextExif, 0x8824}
	TagPhotographicSensitivity  = Tag{ContextExif, 0x8827}
	TagOECF                     = Tag{ContextExif, 0x8828}
	TagSensitivityType          = Tag{ContextExif, 0x8830}
	TagExifVersion              = Tag{ContextExif, 0x9000}
	TagDateTimeOriginal         = Tag{ContextExif, 0x9003}
	TagDateTimeDigitized        = Tag{ContextExif, 0x9004}
	TagOffsetTime               = Tag{ContextExif, 0x9010}
	TagOffsetTimeOriginal       = Tag{ContextExif, 0x9011}
	TagOffsetTimeDigitized      = Tag{ContextExif, 0x9012}
	TagComponentsConfiguration  = Tag{ContextExif, 0x9101}
	TagCompressedBitsPerPixel   = Tag{ContextExif, 0x9102}
	TagShutterSpeedValue        = Tag{ContextExif, 0x9201}
	TagApertureValue            = Tag{ContextExif, 0x9202}
	TagBrightnessValue          = Tag{ContextExif, 0x9203}
	TagExposureBiasValue        = Tag{ContextExif, 0x9204}
	TagMaxApertureValue         = Tag{ContextExif, 0x9205}
	TagSubjectDistance          = Tag{ContextExif, 0x9206}
	TagMeteringMode             = Tag{ContextExif, 0x9207}
	TagLightSource              = Tag{ContextExif, 0x9208}
	TagFlash                    = Tag{ContextExif, 0x9209}
	TagFocalLength              = Tag{ContextExif, 0x920a}
	TagSubjectArea              = Tag{ContextExif, 0x9214}
	TagMakerNote                = Tag{ContextExif, 0x927c}
	TagUserComment              = Tag{ContextExif, 0x9286}
	TagSubSecTime               = Tag{ContextExif, 0x9290}
	TagSubSecTimeOriginal       = Tag{ContextExif, 0x9291}
	TagSubSecTimeDigitized      = Tag{ContextExif, 0x9292}
	TagFlashpixVersion          = Tag{ContextExif, 0xa000}
	TagColorSpace               = Tag{ContextExif, 0xa001}
	TagPixelXDimension          = Tag{ContextExif, 0xa002}
	TagPixelYDimension          = Tag{ContextExif, 0xa003}
	TagRelatedSoundFile         = Tag{ContextExif, 0xa004}
	TagInteropIFDPointer        = Tag{ContextExif, 0xa005}
	TagFlashEnergy              = Tag{ContextExif, 0xa20b}
	TagFocalPlaneXResolution    = Tag{ContextExif, 0xa20e}
	TagFocalPlaneYResolution    = Tag{ContextExif, 0xa20f}
	TagFocalPlaneResolutionUnit = Tag{ContextExif, 0xa210}
	TagSubjectLocation          = Tag{ContextExif, 0xa214}
	TagExposureIndex            = Tag{ContextExif, 0xa215}
	TagSensingMethod            = Tag{ContextExif, 0xa217}
	TagFileSource               = Tag{ContextExif, 0xa300}
	TagSceneType                = Tag{ContextExif, 0xa301}
	TagCFAPattern               = Tag{ContextExif, 0xa302}
	TagCustomRendered           = Tag{ContextExif, 0xa401}
	TagExposureMode             = Tag{ContextExif, 0xa402}
	TagWhiteBalance             = Tag{ContextExif, 0xa403}
	TagDigitalZoomRatio         = Tag{ContextExif, 0xa404}
	TagFocalLengthIn35mmFilm    = Tag{ContextExif, 0xa405}
	TagSceneCaptureType         = Tag{ContextExif, 0xa406}
	TagGainControl              = Tag{ContextExif, 0xa407}
	TagContrast                 = Tag{ContextExif, 0xa408}
	TagSaturation               = Tag{ContextExif, 0xa409}
	TagSharpness                = Tag{ContextExif, 0xa40a}
	TagDeviceSettingDescription = Tag{ContextExif, 0xa40b}
	TagSubjectDistanceRange     = Tag{ContextExif, 0xa40c}
	TagImageUniqueID            = Tag{ContextExif, 0xa420}
	TagCameraOwnerName          = Tag{ContextExif, 0xa430}
	TagBodySerialNumber         = Tag{ContextExif, 0xa431}
	TagLensSpecification        = Tag{ContextExif, 0xa432}
	TagLensMake                 = Tag{ContextExif, 0xa433}
	TagLensModel                = Tag{ContextExif, 0xa434}
	TagLensSerialNumber         = Tag{ContextExif, 0xa435}
	TagGamma                    = Tag{ContextExif, 0xa500}

	// GPS sub-IFD
	TagGPSVersionID         = Tag{ContextGPS, 0x00}
	TagGPSLatitudeRef       = Tag{ContextGPS, 0x01}
	TagGPSLatitude          = Tag{ContextGPS, 0x02}
	TagGPSLongitudeRef      = Tag{ContextGPS, 0x03}
	TagGPSLongitude         = Tag{ContextGPS, 0x04}
	TagGPSAltitudeRef       = Tag{ContextGPS, 0x05}
	TagGPSAltitude          = Tag{ContextGPS, 0x06}
	TagGPSTimeStamp         = Tag{ContextGPS, 0x07}
	TagGPSSatellites        = Tag{ContextGPS, 0x08}
	TagGPSStatus            = Tag{ContextGPS, 0x09}
	TagGPSMeasureMode       = Tag{ContextGPS, 0x0a}
	TagGPSDOP               = Tag{ContextGPS, 0x0b}
	TagGPSSpeedRef          = Tag{ContextGPS, 0x0c}
	TagGPSSpeed             = Tag{ContextGPS, 0x0d}
	TagGPSTrackRef          = Tag{ContextGPS, 0x0e}
	TagGPSTrack             = Tag{ContextGPS, 0x0f}
	TagGPSImgDirectionRef   = Tag{ContextGPS, 0x10}
	TagGPSImgDirection      = Tag{ContextGPS, 0x11}
	TagGPSMapDatum          = Tag{ContextGPS, 0x12}
	TagGPSDestLatitudeRef   = Tag{ContextGPS, 0x13}
	TagGPSDestLatitude      = Tag{ContextGPS, 0x14}
	TagGPSDestLongitudeRef  = Tag{ContextGPS, 0x15}
	TagGPSDestLongitude     = Tag{ContextGPS, 0x16}
	TagGPSDestBearingRef    = Tag{ContextGPS, 0x17}
	TagGPSDestBearing       = Tag{ContextGPS, 0x18}
	TagGPSDestDistanceRef   = Tag{ContextGPS, 0x19}
	TagGPSDestDistance      = Tag{ContextGPS, 0x1a}
	TagGPSProcessingMethod  = Tag{ContextGPS, 0x1b}
	TagGPSAreaInformation   = Tag{ContextGPS, 0x1c}
	TagGPSDateStamp         = Tag{ContextGPS, 0x1d}
	TagGPSDifferential      = Tag{ContextGPS, 0x1e}
	TagGPSHPositioningError = Tag{ContextGPS, 0x1f}

	// Interoperability sub-IFD
	TagInteroperabilityIndex   = Tag{ContextInterop, 0x0001}
	TagInteroperabilityVersion = Tag{ContextInterop, 0x0002}
)

var tagNames = map[Tag]string{
	TagImageWidth:                  "ImageWidth",
	TagImageLength:                 "ImageLength",
	TagBitsPerSample:               "BitsPerSample",
	TagCompression:                 "Compression",
	TagPhotometricInterpretation:   "PhotometricInterpretation",
	TagImageDescription:            "ImageDescription",
	TagMake:                        "Make",
	TagModel:                       "Model",
	TagStripOffsets:                "StripOffsets",
	TagOrientation:                 "Orientation",
	TagSamplesPerPixel:             "SamplesPerPixel",
	TagRowsPerStrip:                "RowsPerStrip",
	TagStripByteCounts:             "StripByteCounts",
	TagXResolution:                 "XResolution",
	TagYResolution:                 "YResolution",
	TagPlanarConfiguration:         "PlanarConfiguration",
	TagResolutionUnit:              "ResolutionUnit",
	TagTransferFunction:            "TransferFunction",
	TagSoftware:                    "Software",
	TagDateTime:                    "DateTime",
	TagArtist:                      "Artist",
	TagWhitePoint:                  "WhitePoint",
	TagPrimaryChromaticities:       "PrimaryChromaticities",
	TagJPEGInterchangeFormat:       "JPEGInterchangeFormat",
	TagJPEGInterchangeFormatLength: "JPEGInterchangeFormatLength",
	TagYCbCrCoefficients:           "YCbCrCoefficients",
	TagYCbCrSubSampling:            "YCbCrSubSampling",
	TagYCbCrPositioning:            "YCbCrPositioning",
	TagReferenceBlackWhite:         "ReferenceBlackWhite",
	TagCopyright:                   "Copyright",
	TagExifIFDPointer:              "ExifIFDPointer",
	TagGPSInfoIFDPointer:           "GPSInfoIFDPointer",

	TagExposureTime:             "ExposureTime",
	TagFNumber:                  "FNumber",
	TagExposureProgram:          "ExposureProgram",
	TagSpectralSensitivity:      "SpectralSensitivity",
	TagPhotographicSensitivity:  "PhotographicSensitivity",
	TagOECF:                     "OECF",
	TagSensitivityType:          "SensitivityType",
	TagExifVersion:              "ExifVersion",
	TagDateTimeOriginal:         "DateTimeOriginal",
	TagDateTimeDigitized:        "DateTimeDigitized",
	TagOffsetTime:               "OffsetTime",
	TagOffsetTimeOriginal:       "OffsetTimeOriginal",
	TagOffsetTimeDigitized:      "OffsetTimeDigitized",
	TagComponentsConfiguration:  "ComponentsConfiguration",
	TagCompressedBitsPerPixel:   "CompressedBitsPerPixel",
	TagShutterSpeedValue:        "ShutterSpeedValue",
	TagApertureValue:            "ApertureValue",
	TagBrightnessValue:          "BrightnessValue",
	TagExposureBiasValue:        "ExposureBiasValue",
	TagMaxApertureValue:         "MaxApertureValue",
	TagSubjectDistance:          "SubjectDistance",
	TagMeteringMode:             "MeteringMode",
	TagLightSource:              "LightSource",
	TagFlash:                    "Flash",
	TagFocalLength:              "FocalLength",
	TagSubjectArea:              "SubjectArea",
	TagMakerNote:                "MakerNote",
	TagUserComment:              "UserComment",
	TagSubSecTime:               "SubSecTime",
	TagSubSecTimeOriginal:       "SubSecTimeOriginal",
	TagSubSecTimeDigitized:      "SubSecTimeDigitized",
	TagFlashpixVersion:          "FlashpixVersion",
	TagColorSpace:               "ColorSpace",
	TagPixelXDimension:          "PixelXDimension",
	TagPixelYDimension:          "PixelYDimension",
	TagRelatedSoundFile:         "RelatedSoundFile",
	TagInteropIFDPointer:        "InteropIFDPointer",
	TagFlashEnergy:              "FlashEnergy",
	TagFocalPlaneXResolution:    "FocalPlaneXResolution",
	TagFocalPlaneYResolution:    "FocalPlaneYResolution",
	TagFocalPlaneResolutionUnit: "FocalPlaneResolutionUnit",
	TagSubjectLocation:          "SubjectLocation",
	TagExposureIndex:            "ExposureIndex",
	TagSensingMethod:            "SensingMethod",
	TagFileSource:               "FileSource",
	TagSceneType:                "SceneType",
	TagCFAPattern:               "CFAPattern",
	TagCustomRendered:           "CustomRendered",
	TagExposureMode:             "ExposureMode",
	TagWhiteBalance:             "WhiteBalance",
	TagDigitalZoomRatio:         "DigitalZoomRatio",
	TagFocalLengthIn35mmFilm:    "FocalLengthIn35mmFilm",
	TagSceneCaptureType:         "SceneCaptureType",
	TagGainControl:              "GainControl",
	TagContrast:                 "Contrast",
	TagSaturation:               "Saturation",
	TagSharpness:                "Sharpness",
	TagDeviceSettingDescription: "DeviceSettingDescription",
	TagSubjectDistanceRange:     "SubjectDistanceRange",
	TagImageUniqueID:            "ImageUniqueID",
	TagCameraOwnerName:          "CameraOwnerName",
	TagBodySerialNumber:         "BodySerialNumber",
	TagLensSpecification:        "LensSpecification",
	TagLensMake:                 "LensMake",
	TagLensModel:                "LensModel",
	TagLensSerialNumber:         "LensSerialNumber",
	TagGamma:                    "Gamma",

	TagGPSVersionID:         "GPSVersionID",
	TagGPSLatitudeRef:       "GPSLatitudeRef",
	TagGPSLatitude:          "GPSLatitude",
	TagGPSLongitudeRef:      "GPSLongitudeRef",
	TagGPSLongitude:         "GPSLongitude",
	TagGPSAltitudeRef:       "GPSAltitudeRef",
	TagGPSAltitude:          "GPSAltitude",
	TagGPSTimeStamp:         "GPSTimeStamp",
	TagGPSSatellites:        "GPSSatellites",
	TagGPSStatus:            "GPSStatus",
	TagGPSMeasureMode:       "GPSMeasureMode",
	TagGPSDOP:               "GPSDOP",
	TagGPSSpeedRef:          "GPSSpeedRef",
	TagGPSSpeed:             "GPSSpeed",
	TagGPSTrackRef:          "GPSTrackRef",
	TagGPSTrack:             "GPSTrack",
	TagGPSImgDirectionRef:   "GPSImgDirectionRef",
	TagGPSImgDirection:      "GPSImgDirection",
	TagGPSMapDatum:          "GPSMapDatum",
	TagGPSDestLatitudeRef:   "GPSDestLatitudeRef",
	TagGPSDestLatitude:      "GPSDestLatitude",
	TagGPSDestLongitudeRef:  "GPSDestLongitudeRef",
	TagGPSDestLongitude:     "GPSDestLongitude",
	TagGPSDestBearingRef:    "GPSDestBearingRef",
	TagGPSDestBearing:       "GPSDestBearing",
	TagGPSDestDistanceRef:   "GPSDestDistanceRef",
	TagGPSDestDistance:      "GPSDestDistance",
	TagGPSProcessingMethod:  "GPSProcessingMethod",
	TagGPSAreaInformation:   "GPSAreaInformation",
	TagGPSDateStamp:         "GPSDateStamp",
	TagGPSDifferential:      "GPSDifferential",
	TagGPSHPositioningError: "GPSHPositioningError",

	TagInteroperabilityIndex:   "InteroperabilityIndex",
	TagInteroperabilityVersion: "InteroperabilityVersion",
}

// Name returns the canonical tag name, or "" for unknown tags
func (t Tag) Name() string {
	return tagNames[t]
}

// String returns the tag name, or Tag(<context>, <number>) when unknown
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%s, %d)", t.Context, t.Number)
}
