package keyboard

import "fmt"

const (
	KeyTab       = "tab"
	KeyReturn    = "return"
	KeyEnter     = "enter"
	KeyEscape    = "escape"
	KeySpace     = "space"
	KeyBackspace = "backspace"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyRight     = "right"
	KeyLeft      = "left"
)

// KeyName names a single raw-mode byte: `a`, `s-a` for shifted letters,
// `c-a` for control combinations. Unknown bytes give "".
func KeyName(b byte) string {
	switch {
	case b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return string(b)
	case b >= 'A' && b <= 'Z':
		return "s-" + string(b-'A'+'a')
	}

	switch b {
	case '\t':
		return KeyTab
	case '\r':
		return KeyReturn
	case '\n':
		return KeyEnter
	case 0x1b:
		return KeyEscape
	case ' ':
		return KeySpace
	case 0x7f, 0x08:
		return KeyBackspace
	}

	if b >= 1 && b <= 26 {
		return fmt.Sprintf("c-%c", 'a'+b-1)
	}
	if b > ' ' && b < 0x7f {
		return string(b)
	}
	return ""
}

var arrows = map[byte]string{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// KeyNames splits one read from the terminal into key names. Arrow key
// escape sequences are reported as a single key.
func KeyNames(buf []byte) []string {
	names := make([]string, 0, len(buf))
	for i := 0; i < len(buf); i++ {
		if buf[i] == 0x1b && i+2 < len(buf) && buf[i+1] == '[' {
			if arrow, ok := arrows[buf[i+2]]; ok {
				names = append(names, arrow)
				i += 2
				continue
			}
		}
		if name := KeyName(buf[i]); name != "" {
			names = append(names, name)
		}
	}
	return names
}
