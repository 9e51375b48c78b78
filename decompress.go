package proptest

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeBZip2
)

// Byte code signatures from https://stackoverflow.com/a/19127748/199475
var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType inspects the leading bytes of a comparisons file. Anything
// without a known signature is treated as uncompressed text.
func DetectDataType(data []byte) DataType {
	if len(data) == 0 {
		return DataTypeInvalid
	}

	for dt, sig := range byteCodeSigs {
		if bytes.HasPrefix(data, sig) {
			return dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress returns the uncompressed contents of data, which may be
// gzip, zip (first entry), xz or bzip2 compressed, or plain text. Unix
// compress (.Z) files are not recognized and are read as plain text.
func MaybeDecompress(data []byte) ([]byte, error) {
	var r io.Reader
	var err error

	src := bytes.NewReader(data)

	switch DetectDataType(data) {
	case DataTypeInvalid, DataTypeNoCompression:
		return data, nil
	case DataTypeGzip:
		r, err = gzip.NewReader(src)
	case DataTypeZip:
		zr := zipstream.NewReader(src)
		if _, err = zr.Next(); err == nil {
			r = zr
		}
	case DataTypeXZ:
		r, err = xz.NewReader(src, 0)
	case DataTypeBZip2:
		r = bzip2.NewReader(src)
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
