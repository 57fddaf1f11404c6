package source

import (
	"slices"
)

// NormalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func NormalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

// RemoveBOM strips a leading UTF-8 byte order mark, if present.
func RemoveBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// buildLineIndex records the byte offset of every '\n'. A line boundary is the
// offset immediately following each newline.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь ресурс - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: наибольший lineIdx[i] строго меньше off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi // индекс последнего \n перед off (0-based)

	// off раньше первого \n - первая строка
	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	startOff := lineIdx[line] + 1 // строка начинается сразу после \n
	return LineCol{Line: uint32(line + 2), Col: off - startOff + 1}
}
