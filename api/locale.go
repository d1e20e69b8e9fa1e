package api

import (
	"net/http"
	"time"

	"golang.org/x/text/language"
)

// dateLayouts lists the forecast date formats per supported locale.
// The first entry is the fallback.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Russian, "02.01.2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
	{language.Swedish, "2006-01-02"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, l := range dateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateLayoutFor picks the forecast date layout for an Accept-Language header
func DateLayoutFor(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return dateLayouts[0].layout
	}
	_, index, confidence := dateMatcher.Match(tags...)
	if confidence == language.No {
		return dateLayouts[0].layout
	}
	return dateLayouts[index].layout
}

// TimezoneParam is the query parameter carrying the viewer's IANA zone
const TimezoneParam = "tz"

// ViewerLocation resolves the zone named by the tz query parameter,
// falling back to time.Local when it is absent or unknown
func ViewerLocation(r *http.Request) *time.Location {
	name := r.URL.Query().Get(TimezoneParam)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
