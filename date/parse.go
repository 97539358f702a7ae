// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package date

// parseISO8601 hand-scans an ISO 8601-1 extended timestamp:
//
//	YYYY-MM-DD'T'HH:MM:SS[.fraction]('Z'|('+'|'-')HH:MM)?
//
// It does not allocate and does not use regexp or time.Parse;
// every field is pulled directly out of the byte slice.
func parseISO8601(data []byte) (year, month, day, hour, min, sec, ns, offsetMin int, hasOffset, ok bool) {
	b := trimSpace(data)
	if len(b) < len("YYYY-MM-DDTHH:MM:SS") {
		return
	}
	var n int
	year, n, ok = fixedDigits(b, 4)
	if !ok {
		return
	}
	b = b[n:]
	if !consumeByte(&b, '-') {
		ok = false
		return
	}
	month, n, ok = fixedDigits(b, 2)
	if !ok || month < 1 || month > 12 {
		ok = false
		return
	}
	b = b[n:]
	if !consumeByte(&b, '-') {
		ok = false
		return
	}
	day, n, ok = fixedDigits(b, 2)
	if !ok || day < 1 || day > 31 {
		ok = false
		return
	}
	b = b[n:]
	if len(b) == 0 || (b[0] != 'T' && b[0] != 't') {
		ok = false
		return
	}
	b = b[1:]
	hour, n, ok = fixedDigits(b, 2)
	if !ok || hour > 23 {
		ok = false
		return
	}
	b = b[n:]
	if !consumeByte(&b, ':') {
		ok = false
		return
	}
	min, n, ok = fixedDigits(b, 2)
	if !ok || min > 59 {
		ok = false
		return
	}
	b = b[n:]
	if !consumeByte(&b, ':') {
		ok = false
		return
	}
	sec, n, ok = fixedDigits(b, 2)
	if !ok || sec > 60 { // allow leap second
		ok = false
		return
	}
	b = b[n:]
	if len(b) > 0 && b[0] == '.' {
		b = b[1:]
		start := 0
		for start < len(b) && b[start] >= '0' && b[start] <= '9' {
			start++
		}
		if start == 0 {
			ok = false
			return
		}
		frac := b[:start]
		b = b[start:]
		ns = fracToNanos(frac)
	}
	switch {
	case len(b) == 0:
		hasOffset = false
	case b[0] == 'Z' || b[0] == 'z':
		b = b[1:]
		hasOffset = true
		offsetMin = 0
	case b[0] == '+' || b[0] == '-':
		sign := 1
		if b[0] == '-' {
			sign = -1
		}
		b = b[1:]
		oh, n, ook := fixedDigits(b, 2)
		if !ook || oh > 23 {
			ok = false
			return
		}
		b = b[n:]
		om := 0
		if len(b) > 0 && b[0] == ':' {
			b = b[1:]
			om, n, ook = fixedDigits(b, 2)
			if !ook || om > 59 {
				ok = false
				return
			}
			b = b[n:]
		}
		hasOffset = true
		offsetMin = sign * (oh*60 + om)
	default:
		ok = false
		return
	}
	b = trimSpace(b)
	if len(b) != 0 {
		ok = false
		return
	}
	ok = true
	return
}

func trimSpace(b []byte) []byte {
	for len(b) > 0 && isWS(b[0]) {
		b = b[1:]
	}
	for len(b) > 0 && isWS(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

func isWS(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func consumeByte(b *[]byte, c byte) bool {
	if len(*b) == 0 || (*b)[0] != c {
		return false
	}
	*b = (*b)[1:]
	return true
}

// fixedDigits reads exactly width decimal digits from the
// front of b and returns the parsed value and width consumed.
func fixedDigits(b []byte, width int) (v, n int, ok bool) {
	if len(b) < width {
		return 0, 0, false
	}
	for i := 0; i < width; i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, width, true
}

// fracToNanos converts a fractional-seconds digit run (without the
// leading '.') into a nanosecond count, truncating beyond 9 digits.
func fracToNanos(frac []byte) int {
	if len(frac) > 9 {
		frac = frac[:9]
	}
	v := 0
	for _, c := range frac {
		v = v*10 + int(c-'0')
	}
	for i := len(frac); i < 9; i++ {
		v *= 10
	}
	return v
}
