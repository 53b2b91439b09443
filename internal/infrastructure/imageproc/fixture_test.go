package imageproc

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	tiffASCII    = 2
	tiffShort    = 3
	tiffLong     = 4
	tiffRational = 5
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte
}

func asciiEntry(tag uint16, s string) ifdEntry {
	v := append([]byte(s), 0)
	return ifdEntry{tag: tag, typ: tiffASCII, count: uint32(len(v)), value: v}
}

func shortEntry(tag uint16, v uint16) ifdEntry {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return ifdEntry{tag: tag, typ: tiffShort, count: 1, value: b}
}

func rationalEntry(tag uint16, pairs ...uint32) ifdEntry {
	b := make([]byte, 4*len(pairs))
	for i, p := range pairs {
		binary.LittleEndian.PutUint32(b[4*i:], p)
	}
	return ifdEntry{tag: tag, typ: tiffRational, count: uint32(len(pairs) / 2), value: b}
}

func ifdSize(n int) int { return 2 + 12*n + 4 }

// buildTIFF lays out IFD0, the Exif sub-IFD and the GPS IFD back to back,
// little-endian, with out-of-line values in a data area after them.
func buildTIFF(ifd0, exifIFD, gpsIFD []ifdEntry) []byte {
	n0 := len(ifd0)
	if len(exifIFD) > 0 {
		n0++
	}
	if len(gpsIFD) > 0 {
		n0++
	}
	exifOff := 8 + ifdSize(n0)
	gpsOff := exifOff
	if len(exifIFD) > 0 {
		gpsOff += ifdSize(len(exifIFD))
	}
	dataOff := gpsOff
	if len(gpsIFD) > 0 {
		dataOff += ifdSize(len(gpsIFD))
	}

	long := func(tag uint16, v int) ifdEntry {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(v))
		return ifdEntry{tag: tag, typ: tiffLong, count: 1, value: b}
	}
	root := append([]ifdEntry{}, ifd0...)
	if len(exifIFD) > 0 {
		root = append(root, long(0x8769, exifOff))
	}
	if len(gpsIFD) > 0 {
		root = append(root, long(0x8825, gpsOff))
	}

	var head, data bytes.Buffer
	head.WriteString("II")
	_ = binary.Write(&head, binary.LittleEndian, uint16(42))
	_ = binary.Write(&head, binary.LittleEndian, uint32(8))

	writeIFD := func(entries []ifdEntry) {
		sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })
		_ = binary.Write(&head, binary.LittleEndian, uint16(len(entries)))
		for _, e := range entries {
			_ = binary.Write(&head, binary.LittleEndian, e.tag)
			_ = binary.Write(&head, binary.LittleEndian, e.typ)
			_ = binary.Write(&head, binary.LittleEndian, e.count)
			if len(e.value) <= 4 {
				inline := make([]byte, 4)
				copy(inline, e.value)
				head.Write(inline)
				continue
			}
			_ = binary.Write(&head, binary.LittleEndian, uint32(dataOff+data.Len()))
			data.Write(e.value)
			if data.Len()%2 == 1 {
				data.WriteByte(0)
			}
		}
		_ = binary.Write(&head, binary.LittleEndian, uint32(0))
	}

	writeIFD(root)
	if len(exifIFD) > 0 {
		writeIFD(exifIFD)
	}
	if len(gpsIFD) > 0 {
		writeIFD(gpsIFD)
	}

	return append(head.Bytes(), data.Bytes()...)
}

// withExif inserts an APP1 Exif segment carrying tiffData after the SOI.
func withExif(jpegData, tiffData []byte) []byte {
	payload := append(append([]byte{}, exifHeader...), tiffData...)
	seg := []byte{0xFF, markerAPP1, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	seg = append(seg, payload...)
	return embedExifSegment(jpegData, seg)
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

// cameraJPEG is a 40x20 JPEG rotated by EXIF orientation 6 with a full
// set of camera fields and a GPS fix at 37.422 N, 122.084 W.
func cameraJPEG(t *testing.T) []byte {
	t.Helper()
	tiffData := buildTIFF(
		[]ifdEntry{
			asciiEntry(0x010F, "Canon"),
			asciiEntry(0x0110, "EOS R5"),
			shortEntry(tagOrientation, 6),
		},
		[]ifdEntry{
			rationalEntry(0x829A, 1, 250),
			rationalEntry(0x829D, 18, 10),
			shortEntry(0x8827, 400),
			asciiEntry(0x9003, "2023:06:15 14:30:00"),
			rationalEntry(0x920A, 50, 1),
			asciiEntry(0xA434, "RF50mm F1.8 STM"),
		},
		[]ifdEntry{
			asciiEntry(0x0001, "N"),
			rationalEntry(0x0002, 37, 1, 0, 1, 15192, 10),
			asciiEntry(0x0003, "W"),
			rationalEntry(0x0004, 122, 1, 0, 1, 3024, 10),
		},
	)
	return withExif(encodeJPEG(t, 40, 20), tiffData)
}
