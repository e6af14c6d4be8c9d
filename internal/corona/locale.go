package corona

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale groups digits the way the host's numeric locale does.
// The zero value is the neutral "C" locale which does not group.
type Locale struct {
	printer *message.Printer
}

func NewLocale(tag language.Tag) Locale {
	return Locale{printer: message.NewPrinter(tag)}
}

// ParseLocale understands POSIX locale names such as fr_FR.UTF-8 or de_DE@euro.
func ParseLocale(name string) Locale {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "C" || name == "POSIX" {
		return Locale{}
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return Locale{}
	}
	return NewLocale(tag)
}

// LocaleFromEnv resolves the numeric locale with the usual precedence.
func LocaleFromEnv(lookupEnv func(string) (string, bool)) Locale {
	for _, name := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		if v, ok := lookupEnv(name); ok && v != "" {
			return ParseLocale(v)
		}
	}
	return Locale{}
}

func (l Locale) Int(n int) string {
	if l.printer == nil {
		return strconv.Itoa(n)
	}
	return l.printer.Sprintf("%d", n)
}
