// Package hash provides the CRC32-Castagnoli checksum used for artifact
// integrity and S3 upload checksums.
//
// One-shot:
//
//	sum := hash.CRC32C(data)
//
// Streaming:
//
//	h := hash.NewCRC32C()
//	_, _ = h.Write(chunk)
//	sum := h.Sum32()
package hash
