package portalurl

import (
	"net/url"
	"strings"

	"git.dsvv.ac.in/cs/newsportal/src/config"
	"git.dsvv.ac.in/cs/newsportal/src/oops"
)

const StaticPath = "/public"

type Q struct {
	Name  string
	Value string
}

var baseUrl string

func init() {
	SetGlobalBaseUrl(config.Config.BaseUrl)
}

func SetGlobalBaseUrl(fullBaseUrl string) {
	parsed, err := url.Parse(fullBaseUrl)
	if err != nil {
		panic(oops.New(err, "base url could not be parsed: %s", fullBaseUrl))
	}
	baseUrl = strings.TrimSuffix(parsed.String(), "/")
}

func Url(path string, query []Q) string {
	result := baseUrl + "/" + trim(path)
	if q := encodeQuery(query); q != "" {
		result += "?" + q
	}
	return result
}

// UrlWithRawQuery is Url for a query that is already encoded.
func UrlWithRawQuery(path string, rawQuery string) string {
	result := baseUrl + "/" + trim(path)
	if rawQuery != "" {
		result += "?" + rawQuery
	}
	return result
}

func StaticUrl(path string, query []Q) string {
	return Url(StaticPath+"/"+trim(path), query)
}

func trim(path string) string {
	if len(path) > 0 && path[0] == '/' {
		return path[1:]
	}
	return path
}

func encodeQuery(query []Q) string {
	result := url.Values{}
	for _, q := range query {
		result.Set(q.Name, q.Value)
	}
	return result.Encode()
}
