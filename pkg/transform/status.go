package transform

import (
	"sort"
	"strconv"
	"strings"

	"github.com/blimu-dev/typegen/pkg/openapi"
)

// SuccessCodes returns the success status codes of responses in priority
// order: numeric 2xx codes ascending, then 2XX.
func SuccessCodes(responses *openapi.OrderedMap[*openapi.Response]) []string {
	return rankCodes(responses, []int{2}, []string{"2XX"})
}

// ErrorCodes returns the error status codes of responses in priority order:
// numeric 4xx ascending, numeric 5xx ascending, 4XX, 5XX, then default.
func ErrorCodes(responses *openapi.OrderedMap[*openapi.Response]) []string {
	return rankCodes(responses, []int{4, 5}, []string{"4XX", "5XX", "default"})
}

// FirstSuccess returns the representative success code of responses
func FirstSuccess(responses *openapi.OrderedMap[*openapi.Response]) (string, bool) {
	return first(SuccessCodes(responses))
}

// FirstError returns the representative error code of responses
func FirstError(responses *openapi.OrderedMap[*openapi.Response]) (string, bool) {
	return first(ErrorCodes(responses))
}

func first(codes []string) (string, bool) {
	if len(codes) == 0 {
		return "", false
	}
	return codes[0], true
}

func rankCodes(responses *openapi.OrderedMap[*openapi.Response], classes []int, wildcards []string) []string {
	var out []string
	for _, class := range classes {
		var numeric []int
		for _, code := range responses.Keys() {
			n, err := strconv.Atoi(code)
			if err != nil || len(code) != 3 || n/100 != class {
				continue
			}
			numeric = append(numeric, n)
		}
		sort.Ints(numeric)
		for _, n := range numeric {
			out = append(out, strconv.Itoa(n))
		}
	}
	for _, wildcard := range wildcards {
		for _, code := range responses.Keys() {
			if strings.EqualFold(code, wildcard) {
				out = append(out, code)
			}
		}
	}
	return out
}
