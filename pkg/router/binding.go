package router

import (
	"reflect"
	"strings"
)

// fieldKindsByJSONTag maps every json tag of the request struct to a coarse
// scalar kind used for query value conversion.
func fieldKindsByJSONTag(req any) map[string]string {
	kinds := map[string]string{}

	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return kinds
	}

	collectFieldKinds(t, kinds)
	return kinds
}

func collectFieldKinds(t reflect.Type, kinds map[string]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			embedded := field.Type
			for embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}

			if embedded.Kind() == reflect.Struct {
				collectFieldKinds(embedded, kinds)
			}
			continue
		}

		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag == "" || tag == "-" {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			kinds[tag] = "int"
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			kinds[tag] = "uint"
		case reflect.Float32, reflect.Float64:
			kinds[tag] = "float"
		case reflect.Bool:
			kinds[tag] = "bool"
		}
	}
}
