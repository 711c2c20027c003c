package simd

// commonBytes lists bytes of typical text and source code from most to least
// frequent. Bytes not listed are considered rare.
const commonBytes = " etaoinsrhldcu\nmfpgwyb,.v_kTSAIE=()\"-/':0x1C;2MRDPN*BLOHjF{}qW3z$<>G456798[]UV#!J+KY&|%?\\@XQZ^`~\t"

// ranks holds the frequency rank of every byte; higher is more common.
var ranks = func() [256]byte {
	var r [256]byte
	for i := 0; i < len(commonBytes); i++ {
		r[commonBytes[i]] = byte(255 - i*2)
	}
	return r
}()

// ByteRank returns the frequency rank of b. Lower ranks are rarer and make
// better search anchors.
func ByteRank(b byte) byte {
	return ranks[b]
}

// RareByte returns the rarest byte of needle and its offset. Ties go to the
// later offset, since the end of a word is usually more distinctive than its
// start. needle must not be empty.
func RareByte(needle []byte) (byte, int) {
	best := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if ranks[needle[i]] < ranks[needle[best]] {
			best = i
		}
	}
	return needle[best], best
}
