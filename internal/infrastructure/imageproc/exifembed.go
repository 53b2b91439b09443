package imageproc

import (
	"bytes"
	"encoding/binary"
)

const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP1 = 0xE1

	tagOrientation = 0x0112
	typeShort      = 3
)

var exifHeader = []byte("Exif\x00\x00")

// extractExifSegment returns a copy of the first APP1 Exif segment of a
// JPEG, marker and length included, or nil.
func extractExifSegment(data []byte) []byte {
	if len(data) < 4 || data[0] != 0xFF || data[1] != markerSOI {
		return nil
	}

	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			return nil
		}
		marker := data[i+1]
		switch {
		case marker == 0xFF:
			i++
			continue
		case marker == markerSOS || marker == markerEOI:
			return nil
		case marker >= 0xD0 && marker <= 0xD7, marker == 0x01:
			i += 2
			continue
		}

		length := int(binary.BigEndian.Uint16(data[i+2:]))
		end := i + 2 + length
		if length < 2 || end > len(data) {
			return nil
		}
		if marker == markerAPP1 && bytes.HasPrefix(data[i+4:end], exifHeader) {
			seg := make([]byte, end-i)
			copy(seg, data[i:end])
			return seg
		}
		i = end
	}
	return nil
}

// resetOrientation rewrites the IFD0 Orientation tag of an APP1 segment
// to 1 (top-left) in place.
func resetOrientation(seg []byte) {
	start := 4 + len(exifHeader)
	if len(seg) < start+8 {
		return
	}
	tiffData := seg[start:]

	var order binary.ByteOrder
	switch string(tiffData[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return
	}

	ifd := int(order.Uint32(tiffData[4:]))
	if ifd < 8 || ifd+2 > len(tiffData) {
		return
	}
	count := int(order.Uint16(tiffData[ifd:]))
	for k := 0; k < count; k++ {
		entry := ifd + 2 + k*12
		if entry+12 > len(tiffData) {
			return
		}
		if order.Uint16(tiffData[entry:]) != tagOrientation {
			continue
		}
		if order.Uint16(tiffData[entry+2:]) == typeShort {
			order.PutUint16(tiffData[entry+8:], 1)
		}
		return
	}
}

// embedExifSegment inserts seg directly after the SOI marker.
func embedExifSegment(jpegData, seg []byte) []byte {
	out := make([]byte, 0, len(jpegData)+len(seg))
	out = append(out, jpegData[:2]...)
	out = append(out, seg...)
	return append(out, jpegData[2:]...)
}
