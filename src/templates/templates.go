package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/auth"
	"git.dsvv.ac.in/cs/newsportal/src/config"
	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"git.dsvv.ac.in/cs/newsportal/src/models"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
	"git.dsvv.ac.in/cs/newsportal/src/portalurl"
	"github.com/Masterminds/sprig"
	"github.com/teacat/noire"
)

const (
	Dayish   = time.Hour * 24
	Weekish  = Dayish * 7
	Monthish = Dayish * 30
	Yearish  = Dayish * 365
)

//go:embed src
var embeddedTemplateFs embed.FS
var embeddedTemplates map[string]*template.Template

//go:embed public
var embeddedPublicFs embed.FS

// PublicFS holds the static files served under /public.
func PublicFS() fs.FS {
	if config.Config.DevConfig.LiveTemplates {
		return os.DirFS("src/templates/public")
	}
	public, err := fs.Sub(embeddedPublicFs, "public")
	if err != nil {
		panic(err)
	}
	return public
}

func getTemplatesFromFS(templateFS fs.ReadDirFS) (map[string]*template.Template, map[string]error) {
	templates := make(map[string]*template.Template)
	errs := make(map[string]error)

	files, err := templateFS.ReadDir("src")
	if err != nil {
		errs["src"] = err
		return templates, errs
	}
	for _, f := range files {
		if !strings.HasSuffix(f.Name(), ".html") {
			continue
		}
		t := template.New(f.Name())
		t = t.Funcs(sprig.FuncMap())
		t = t.Funcs(PortalTemplateFuncs)
		t, err := t.ParseFS(templateFS,
			"src/layouts/*",
			"src/include/*",
			"src/"+f.Name(),
		)
		if err != nil {
			errs[f.Name()] = err
			continue
		}
		templates[f.Name()] = t
	}

	return templates, errs
}

func Init() {
	var errs map[string]error
	type errEntry struct {
		name string
		err  error
	}

	embeddedTemplates, errs = getTemplatesFromFS(embeddedTemplateFs)
	if len(errs) > 0 {
		var errsList []errEntry
		for filename, err := range errs {
			errsList = append(errsList, errEntry{filename, err})
		}
		sort.Slice(errsList, func(i, j int) bool {
			return errsList[i].name < errsList[j].name
		})
		for _, err := range errsList {
			logging.Error().Str("filename", err.name).Err(err.err).Msg("Failed to parse template")
		}
		panic("Failed to parse templates; see above")
	}
}

func GetTemplate(name string) *template.Template {
	var templates map[string]*template.Template
	if config.Config.DevConfig.LiveTemplates {
		var errs map[string]error
		templates, errs = getTemplatesFromFS(os.DirFS("src/templates").(fs.ReadDirFS))
		if errs[name] != nil {
			panic(oops.New(errs[name], "Error in template %s", name))
		}
	} else {
		if embeddedTemplates == nil {
			Init()
		}
		templates = embeddedTemplates
	}

	template, hasTemplate := templates[name]
	if !hasTemplate {
		panic(oops.New(nil, "Template not found: %s", name))
	}
	return template
}

var categoryColors = map[models.Category]string{
	models.CategoryCS:     "b91c1c",
	models.CategoryAlumni: "7c3aed",
	models.CategoryClub:   "2563eb",
	models.CategoryCampus: "059669",
	models.CategoryEvents: "d97706",
}

var indiaTime = time.FixedZone("IST", 5*60*60+30*60)

var PortalTemplateFuncs = template.FuncMap{
	"absolutedate": func(t time.Time) string {
		return t.In(indiaTime).Format("January 2, 2006")
	},
	"shortdate": func(t time.Time) string {
		return t.In(indiaTime).Format("2/1/2006")
	},
	"headerdate": func(t time.Time) string {
		return t.In(indiaTime).Format("Monday, January 2, 2006")
	},
	"relativedate": func(t time.Time) string {
		str := func(n int, unit string) string {
			if n == 1 {
				return fmt.Sprintf("1 %s ago", unit)
			}
			return fmt.Sprintf("%d %ss ago", n, unit)
		}

		delta := time.Since(t)
		if delta < time.Minute {
			return "Less than a minute ago"
		} else if delta < time.Hour {
			return str(int(delta.Minutes()), "minute")
		} else if delta < Dayish {
			return str(int(delta/time.Hour), "hour")
		} else if delta < Weekish {
			return str(int(delta/Dayish), "day")
		} else if delta < Monthish {
			return str(int(delta/Weekish), "week")
		} else if delta < Yearish {
			return str(int(delta/Monthish), "month")
		}
		return str(int(delta/Yearish), "year")
	},
	"timehtml": func(formatted string, t time.Time) template.HTML {
		iso := t.UTC().Format(time.RFC3339)
		return template.HTML(fmt.Sprintf(`<time datetime="%s">%s</time>`, iso, template.HTMLEscapeString(formatted)))
	},
	"darken": func(amount float64, color noire.Color) noire.Color {
		return color.Shade(amount)
	},
	"color2css": func(color noire.Color) template.CSS {
		return template.CSS(color.HTML())
	},
	"hex2color": func(hex string) (noire.Color, error) {
		hex = strings.TrimPrefix(hex, "#")
		if len(hex) < 6 {
			return noire.Color{}, fmt.Errorf("hex color was invalid: %v", hex)
		}
		return noire.NewHex(hex), nil
	},
	"lightness": func(lightness float64, color noire.Color) noire.Color {
		h, s, _, a := color.HSLA()
		return noire.NewHSLA(h, s, lightness*100, a)
	},
	"categorycolor": func(category string) noire.Color {
		hex, ok := categoryColors[models.Category(category)]
		if !ok {
			hex = "4b5563"
		}
		return noire.NewHex(hex)
	},
	"csrftoken": func(s *Session) template.HTML {
		if s == nil {
			return ""
		}
		return template.HTML(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`, auth.CSRFFieldName, template.HTMLEscapeString(s.CSRFToken)))
	},
	"static": func(filepath string) string {
		return portalurl.BuildPublic(filepath)
	},
}
