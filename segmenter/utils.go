package segmenter

// textBlock is a maximal run of runes that are either all ASCII letters and
// digits or all something else.
type textBlock struct {
	runes          []rune
	isPureAlphaNum bool
}

func splitTextToBlocks(runes []rune) []textBlock {
	var blocks []textBlock
	if len(runes) == 0 {
		return blocks
	}

	start := 0
	inAlphaNum := isAlphaNum(runes[0])
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && isAlphaNum(runes[i]) == inAlphaNum {
			continue
		}
		blocks = append(blocks, textBlock{runes: runes[start:i], isPureAlphaNum: inAlphaNum})
		if i < len(runes) {
			start = i
			inAlphaNum = isAlphaNum(runes[i])
		}
	}
	return blocks
}

func isAlphaNum(r rune) bool {
	if r < 128 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	return false
}
