package imageproc

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
)

const exifDateLayout = "2006:01:02 15:04:05"

// exifFields is the subset of EXIF data kept on a photo.
type exifFields struct {
	Latitude     *float64
	Longitude    *float64
	DateTaken    *time.Time
	Camera       *string
	Lens         *string
	FocalLength  *string
	Aperture     *string
	ShutterSpeed *string
	ISO          *string
}

func (f exifFields) apply(m *gallery.ImageMetadata) {
	m.Latitude = f.Latitude
	m.Longitude = f.Longitude
	m.DateTaken = f.DateTaken
	m.Camera = f.Camera
	m.Lens = f.Lens
	m.FocalLength = f.FocalLength
	m.Aperture = f.Aperture
	m.ShutterSpeed = f.ShutterSpeed
	m.ISO = f.ISO
}

// readExif parses EXIF from the original upload. Sources without EXIF
// return an error; callers treat that as "no metadata".
func readExif(raw []byte) (exifFields, error) {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return exifFields{}, fmt.Errorf("decode exif: %w", err)
	}

	var f exifFields

	if lat, lon, err := x.LatLong(); err == nil && !math.IsNaN(lat) && !math.IsNaN(lon) {
		f.Latitude = &lat
		f.Longitude = &lon
	}

	if s, ok := stringTag(x, exif.DateTimeOriginal); ok {
		if t, err := time.ParseInLocation(exifDateLayout, s, time.UTC); err == nil {
			f.DateTaken = &t
		}
	}

	camMake, okMake := stringTag(x, exif.Make)
	model, okModel := stringTag(x, exif.Model)
	if okMake && okModel {
		f.Camera = strPtr(strings.TrimSpace(camMake + " " + model))
	}

	if lens, ok := stringTag(x, exif.FieldName("LensModel")); ok {
		f.Lens = &lens
	}

	if v, ok := ratTag(x, exif.FocalLength); ok && v != 0 {
		f.FocalLength = strPtr(formatNumber(v) + "mm")
	}

	if v, ok := ratTag(x, exif.FNumber); ok && v != 0 {
		f.Aperture = strPtr("f/" + formatNumber(v))
	}

	if v, ok := ratTag(x, exif.ExposureTime); ok {
		f.ShutterSpeed = formatShutter(v)
	}

	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil && iso != 0 {
			f.ISO = strPtr("ISO " + strconv.Itoa(iso))
		}
	}

	return f, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) (string, bool) {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.StringVal {
		return "", false
	}
	s, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	s = strings.TrimRight(s, "\x00 ")
	if s == "" {
		return "", false
	}
	return s, true
}

func ratTag(x *exif.Exif, name exif.FieldName) (float64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// formatShutter renders an exposure time as "1/<n>s". Exposures that
// round to a zero denominator (longer than two seconds) are dropped.
func formatShutter(exposure float64) *string {
	if exposure <= 0 {
		return nil
	}
	den := math.Round(1 / exposure)
	if den == 0 {
		return nil
	}
	return strPtr("1/" + strconv.FormatFloat(den, 'f', -1, 64) + "s")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func strPtr(s string) *string { return &s }
