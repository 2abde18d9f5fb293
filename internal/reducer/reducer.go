// Package reducer pulls a title and the main readable text out of an HTML
// page.
//
// The heuristic strategy works on the raw markup with regular expressions.
// It is not an HTML parser: nested or malformed markup can select the wrong
// fragment or leave stray characters behind. It never fails; the worst case
// is text from the whole document and the "Untitled" title.
package reducer

import (
	"net/url"
	"regexp"
	"strings"
)

// Untitled is returned when a page has no usable title.
const Untitled = "Untitled"

// MinContentDivLength is the raw fragment length a keyword div must exceed
// to be taken as the article body.
const MinContentDivLength = 500

// Article is the readable part of a page.
type Article struct {
	Title string
	Text  string
}

// Reducer extracts an Article from an HTML document. pageURL may be nil.
type Reducer interface {
	Reduce(html string, pageURL *url.URL) Article
}

// Heuristic reduces pages with fixed tag and attribute rules.
type Heuristic struct{}

func (Heuristic) Reduce(html string, _ *url.URL) Article {
	return Article{
		Title: ExtractTitle(html),
		Text:  ExtractContent(html),
	}
}

var (
	ogTitleRe = regexp.MustCompile(`(?i)<meta[^>]*property=["']og:title["'][^>]*content=["']([^"']+)["']`)
	titleRe   = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	h1Re      = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)

	articleRe = regexp.MustCompile(`(?is)<article[^>]*>(.*?)</article>`)
	mainRe    = regexp.MustCompile(`(?is)<main[^>]*>(.*?)</main>`)
	bodyRe    = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)

	contentDivRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<div[^>]*class="[^"]*(?:article|content|post|entry|story)[^"]*"[^>]*>(.*?)</div>`),
		regexp.MustCompile(`(?is)<div[^>]*id="[^"]*(?:article|content|post|entry|story)[^"]*"[^>]*>(.*?)</div>`),
	}

	tagRe = regexp.MustCompile(`<[^>]+>`)
)

// Elements dropped together with everything inside them.
var strippedElements = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b.*?</script>`),
	regexp.MustCompile(`(?is)<style\b.*?</style>`),
	regexp.MustCompile(`(?is)<nav\b.*?</nav>`),
	regexp.MustCompile(`(?is)<header\b.*?</header>`),
	regexp.MustCompile(`(?is)<footer\b.*?</footer>`),
	regexp.MustCompile(`(?is)<aside\b.*?</aside>`),
}

// Replacements run one after another, so "&amp;lt;" ends up as "<".
var entities = [][2]string{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&ldquo;", `"`},
	{"&rdquo;", `"`},
	{"&lsquo;", "'"},
	{"&rsquo;", "'"},
	{"&mdash;", "—"},
	{"&ndash;", "–"},
}

// ExtractTitle returns the og:title meta content, else the <title> text,
// else the first <h1> text, else Untitled.
func ExtractTitle(html string) string {
	if m := ogTitleRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	for _, re := range []*regexp.Regexp{titleRe, h1Re} {
		if m := re.FindStringSubmatch(html); m != nil {
			if t := strings.TrimSpace(m[1]); t != "" {
				return t
			}
		}
	}
	return Untitled
}

// ExtractContent selects the main fragment of html and reduces it to plain
// text. Candidates are tried in order: <article>, <main>, a div whose class
// or id mentions article/content/post/entry/story and whose inner markup is
// longer than MinContentDivLength, <body>, then the whole document.
func ExtractContent(html string) string {
	return StripTags(selectFragment(html))
}

func selectFragment(html string) string {
	for _, re := range []*regexp.Regexp{articleRe, mainRe} {
		if m := re.FindStringSubmatch(html); m != nil {
			return m[1]
		}
	}
	for _, re := range contentDivRes {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			if len(m[1]) > MinContentDivLength {
				return m[1]
			}
		}
	}
	if m := bodyRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return html
}

// StripTags removes non-content elements, replaces the remaining tags with
// spaces, decodes common named entities and collapses whitespace.
func StripTags(fragment string) string {
	text := fragment
	for _, re := range strippedElements {
		text = re.ReplaceAllString(text, "")
	}
	text = tagRe.ReplaceAllString(text, " ")
	for _, e := range entities {
		text = strings.ReplaceAll(text, e[0], e[1])
	}
	return strings.Join(strings.Fields(text), " ")
}
