// Package annotations finds and parses annotations in the comments to an interface or method.
// An annotation must have the following format: @Name{"key1":"value1", "key2": "value2", ...}, i.e.
// it begins with an @ character, followed by a name followed by a valid json object.
// The json object may span multiple comment lines.
package annotations

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/dkinzler/autogen/codegen/parse"
	"github.com/dkinzler/autogen/errors"
)

// An annotation on an interface.
type InterfaceAnnotation struct {
	// Name of the annotation
	Name string
	// The annotation on the interface
	Annotation string
	// Annotations on the interface methods.
	// Slice has the same length as parse.Interface.Methods.
	// Contain empty string for methods without an annotation.
	MethodAnnotations []string
}

// Returns a map of annotations found in the comments of the given interface.
// The map keys are the annotation names and the values are instances of InterfaceAnnotation.
func ParseInterfaceAnnotations(i parse.Interface) (map[string]InterfaceAnnotation, error) {
	annotationsOnInterface, err := parseAnnotations(i.Comments)
	if err != nil {
		return nil, errors.Newf(err, "annotations", errors.InvalidArgument, "interface %v", i.Name)
	}

	annotationsOnMethods := make([]map[string]string, len(i.Methods))
	for j, method := range i.Methods {
		annotationsOnMethod, err := ParseMethodAnnotations(method)
		if err != nil {
			return nil, errors.Newf(err, "annotations", errors.InvalidArgument, "interface %v", i.Name)
		}
		annotationsOnMethods[j] = annotationsOnMethod
	}

	result := make(map[string]InterfaceAnnotation)
	for name, annot := range annotationsOnInterface {
		x := InterfaceAnnotation{
			Name:       name,
			Annotation: annot,
		}

		methodAnnotations := make([]string, len(i.Methods))
		for j, annotationsOnMethod := range annotationsOnMethods {
			if ma, ok := annotationsOnMethod[name]; ok {
				methodAnnotations[j] = ma
			}
		}
		x.MethodAnnotations = methodAnnotations
		result[name] = x
	}

	return result, nil
}

// Returns all annotations on a method, regardless of whether the interface carries an annotation with the same name.
func ParseMethodAnnotations(m parse.Method) (map[string]string, error) {
	result, err := parseAnnotations(m.Comments)
	if err != nil {
		return nil, errors.Newf(err, "annotations", errors.InvalidArgument, "method %v", m.Name)
	}
	return result, nil
}

// Parses the annotation as JSON and stores the result in the "result" parameter, which should usually be a pointer to a struct or map.
func ParseJSONAnnotation(annotation string, result interface{}) error {
	err := json.Unmarshal([]byte(annotation), result)
	if err != nil {
		return errors.New(err, "annotations", errors.InvalidArgument).WithMessage("annotation is not a valid json object")
	}
	return nil
}

// scanner states
const (
	scanText = iota
	scanName
	scanJSON
)

// Comment lines are joined with a newline before scanning, so a json object can span multiple lines.
// A name consists of letters, digits and underscores. Any other character before the opening "{" discards the name,
// e.g. the "@" of an email address in a comment does not start an annotation.
func parseAnnotations(comments []string) (map[string]string, error) {
	result := make(map[string]string)

	state := scanText
	var name, body strings.Builder
	depth := 0
	inString := false
	escaped := false

	for _, c := range strings.Join(comments, "\n") {
		switch state {
		case scanText:
			if c == '@' {
				state = scanName
				name.Reset()
			}
		case scanName:
			switch {
			case c == '@':
				name.Reset()
			case c == '{':
				if name.Len() == 0 {
					state = scanText
					continue
				}
				state = scanJSON
				body.Reset()
				body.WriteRune(c)
				depth = 1
				inString = false
				escaped = false
			case c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c):
				name.WriteRune(c)
			default:
				state = scanText
			}
		case scanJSON:
			body.WriteRune(c)
			if inString {
				if escaped {
					escaped = false
				} else if c == '\\' {
					escaped = true
				} else if c == '"' {
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					n := name.String()
					if _, ok := result[n]; ok {
						return nil, errors.Newf(nil, "annotations", errors.InvalidArgument, "multiple annotations found with name: %v", n)
					}
					result[n] = body.String()
					state = scanText
				}
			}
		}
	}

	return result, nil
}
