package format

import (
	"os"
	"strings"

	"github.com/rubiojr/hookvault/pkg/core"
	"golang.org/x/text/language"
)

// Unknown is shown when a hook carries no usable generation date.
const Unknown = "Unknown"

const (
	layoutMonthFirst = "Jan 2, 2006"
	layoutDayFirst   = "2 Jan 2006"
	layoutYearFirst  = "2006 Jan 2"
)

// wildcard is the base x/text assigns to the "*" range of Accept-Language.
var wildcard = language.MustParseBase("mul")

// monthFirst lists the locales that write the month before the day.
var monthFirst = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("en-PH"),
	language.MustParse("en-CA"),
	language.MustParse("es-US"),
}

// yearFirst lists the locales that write the year first.
var yearFirst = []language.Tag{
	language.Chinese,
	language.Japanese,
	language.Korean,
	language.Hungarian,
	language.Lithuanian,
}

// Date renders an ISO timestamp as an abbreviated-month date following the
// conventions of the viewer's locale. Empty or unparseable input yields
// Unknown. The date is shown in the local time zone.
func Date(iso string, tag language.Tag) string {
	t, ok := core.ParseTimestamp(iso)
	if !ok {
		return Unknown
	}
	return t.Local().Format(DateLayout(tag))
}

// HookDate is Date for an optional generated_at value.
func HookDate(h core.Hook, tag language.Tag) string {
	if h.GeneratedAt == nil {
		return Unknown
	}
	return Date(*h.GeneratedAt, tag)
}

// DateLayout picks the time layout used for tag.
func DateLayout(tag language.Tag) string {
	if tag == language.Und {
		return layoutMonthFirst
	}
	if matches(tag, monthFirst) {
		return layoutMonthFirst
	}
	if matches(tag, yearFirst) {
		return layoutYearFirst
	}
	// Bare English without a region follows the US convention.
	if base, conf := tag.Base(); conf != language.No && base.String() == "en" {
		if _, rconf := tag.Region(); rconf != language.Exact {
			return layoutMonthFirst
		}
	}
	return layoutDayFirst
}

func matches(tag language.Tag, set []language.Tag) bool {
	for _, t := range set {
		if t == tag {
			return true
		}
		if tbase, _ := t.Base(); tbase.String() != "en" && tbase.String() != "es" {
			if base, _ := tag.Base(); base == tbase {
				return true
			}
		}
	}
	return false
}

// AcceptLanguage resolves the preferred tag of an Accept-Language header.
// It returns language.Und when the header is empty, invalid or only names
// the "*" wildcard.
func AcceptLanguage(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return language.Und
	}
	for _, tag := range tags {
		if base, _ := tag.Base(); base == wildcard {
			continue
		}
		return tag
	}
	return language.Und
}

// EnvLanguage resolves the viewer's locale from LC_ALL, LC_TIME or LANG,
// in that order, the way POSIX tools do.
func EnvLanguage() language.Tag {
	for _, name := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		// en_US.UTF-8@euro -> en-US
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" {
			return language.Und
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err == nil {
			return tag
		}
	}
	return language.Und
}
