package sourcemap

import "strings"

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// writeVLQ appends value to b in base64 VLQ, the sign kept in the low bit.
func writeVLQ(b *strings.Builder, value int) {
	if value < 0 {
		value = ((-value) << 1) | 1
	} else {
		value = value << 1
	}

	for {
		digit := value & 0x1f
		value >>= 5
		if value > 0 {
			digit |= 0x20
		}
		b.WriteByte(base64Chars[digit])
		if value == 0 {
			return
		}
	}
}
