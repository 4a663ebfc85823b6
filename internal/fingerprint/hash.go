// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

// HashVersion tags the canonical encoding. Bump it whenever the component
// set or its order changes so old and new hashes never collide.
const HashVersion = "sentinel-fp-v2"

// DefaultSalt is used when no salt is configured.
// It is public, so hashes produced with it are guessable. Deployments must
// set fingerprint.salt (FINGERPRINT_SALT).
const DefaultSalt = "default-fingerprint-salt"

// canonicalEncoding serializes the device components in fixed order.
// Every field is length-prefixed; list fields carry their element count and
// optional fields a presence byte, so no two distinct inputs share an encoding.
func canonicalEncoding(raw *RawFingerprint, salt string) []byte {
	var buf bytes.Buffer
	buf.Grow(256 + len(raw.UserAgent) + len(raw.Canvas) + len(raw.WebGL) + len(raw.Audio))

	writeField(&buf, HashVersion)
	writeField(&buf, raw.UserAgent)
	writeField(&buf, raw.ScreenResolution)
	writeField(&buf, raw.Timezone)
	writeField(&buf, raw.Language)
	writeField(&buf, raw.Platform)
	writeField(&buf, strconv.Itoa(raw.ColorDepth))
	writeField(&buf, strconv.Itoa(raw.HardwareConcurrency))

	if raw.DeviceMemory != nil {
		buf.WriteByte(1)
		writeField(&buf, strconv.FormatFloat(*raw.DeviceMemory, 'g', -1, 64))
	} else {
		buf.WriteByte(0)
	}

	writeField(&buf, raw.Canvas)
	writeField(&buf, raw.WebGL)
	writeField(&buf, raw.Audio)
	writeList(&buf, raw.Fonts)
	writeList(&buf, raw.Plugins)
	writeField(&buf, strconv.FormatBool(raw.CookieEnabled))
	writeField(&buf, strconv.FormatBool(raw.DoNotTrack))
	writeField(&buf, salt)

	return buf.Bytes()
}

func writeField(buf *bytes.Buffer, s string) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(s)))
	buf.Write(n[:])
	buf.WriteString(s)
}

func writeList(buf *bytes.Buffer, items []string) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(items)))
	buf.Write(n[:])
	for _, item := range items {
		writeField(buf, item)
	}
}

// Hash returns the hex SHA-256 identity hash of raw under salt.
// It is a pure function of the device components, HashVersion and salt.
func Hash(raw *RawFingerprint, salt string) string {
	sum := sha256.Sum256(canonicalEncoding(raw, salt))
	return hex.EncodeToString(sum[:])
}
