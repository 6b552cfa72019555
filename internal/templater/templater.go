package templater

import (
	"regexp"
	"strconv"
	"strings"

	"mangadesk/internal/domain"
	"mangadesk/internal/sanitize"
	"mangadesk/internal/utils"
)

// DefaultPageTemplate names saved pages like "Vol.1 Ch.007 - Title - 003".
const DefaultPageTemplate = "{vol:Vol.<.> }Ch.{num:3}{title: - <.>} - {page:3}"

var templatePattern = regexp.MustCompile(`{((\w+?)(:.*?)?)}`)

// Templater expands page file name templates. Supported variables:
//
//	{num} or {num:N}    chapter number, integer part padded to N digits
//	{page} or {page:N}  page number, padded to N digits
//	{vol:...}, {title:...}, {lang:...}  text with <.> replaced by the value,
//	                    dropped entirely when the value is empty
type Templater struct {
	Chapter domain.ChapterRow
	Page    int
}

func New(chapter domain.ChapterRow, page int) *Templater {
	return &Templater{
		Chapter: chapter,
		Page:    page,
	}
}

func width(options string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(options, ":"))
	return n
}

func (t *Templater) handleNum(options string) string {
	return utils.PadNumber(t.Chapter.Chapter, width(options))
}

func (t *Templater) handlePage(options string) string {
	return utils.PadNumber(strconv.Itoa(t.Page), width(options))
}

func handleText(value, options string) string {
	if value == "" {
		return ""
	}
	if options == "" {
		return value
	}

	cleanString := strings.TrimPrefix(options, ":")
	return strings.ReplaceAll(cleanString, "<.>", value)
}

// ExecTemplate expands template and returns a name safe to use as a file name.
func (t *Templater) ExecTemplate(template string) string {
	newString := template
	for _, match := range templatePattern.FindAllStringSubmatch(template, -1) {
		replace := match[0]

		options := match[3]
		switch match[2] {
		case "num":
			replace = t.handleNum(options)
		case "page":
			replace = t.handlePage(options)
		case "vol":
			replace = handleText(t.Chapter.Volume, options)
		case "title":
			replace = handleText(t.Chapter.Title, options)
		case "lang":
			replace = handleText(t.Chapter.TranslatedLanguage, options)
		}

		newString = strings.Replace(newString, match[0], replace, 1)
	}

	return sanitize.Filename(newString)
}
