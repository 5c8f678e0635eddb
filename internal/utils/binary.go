package utils

import (
	"io"
	"os"
)

// sniffLength bounds how many leading bytes are sampled when classifying a file.
const sniffLength = 64

// IsBinary reports whether the provided byte sample appears to contain binary data.
// An empty sample is treated as text.
func IsBinary(sample []byte) bool {
	for _, sampledByte := range sample {
		if sampledByte == 0 {
			return true
		}
	}
	return false
}

// IsFileBinary samples up to sniffLength leading bytes of the file at filePath and
// classifies the file as binary when the sample contains a NUL byte. It returns an
// error only when the file cannot be opened or read; classification never fails on
// its own.
func IsFileBinary(filePath string) (bool, error) {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return false, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return false, readError
	}
	return IsBinary(buffer[:bytesRead]), nil
}
