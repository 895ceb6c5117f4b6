// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// checkDirectives walks template the way fmt.Sprintf does and reports
// the first directive fmt would replace with a "%!" marker. Only the
// template and the argument types and structure are examined, so
// marker-like text inside literals or argument values is never
// mistaken for a fmt error.
func checkDirectives(template string, args []any) error {
	end := len(template)
	argNum := 0
	reordered := false

	for i := 0; i < end; {
		for i < end && template[i] != '%' {
			i++
		}
		if i >= end {
			break
		}
		start := i
		i++

		sharp := false
		for ; i < end; i++ {
			switch template[i] {
			case '#':
				sharp = true
				continue
			case '0', '+', '-', ' ':
				continue
			}
			break
		}

		goodArgNum := true
		var afterIndex bool
		argNum, i, afterIndex = argNumber(template, i, argNum, len(args), &goodArgNum, &reordered)

		if i < end && template[i] == '*' {
			i++
			var ok bool
			ok, argNum = intFromArg(args, argNum)
			if !ok {
				return &BadDirectiveError{Directive: "%!(BADWIDTH)", Offset: start}
			}
			afterIndex = false
		} else {
			var present bool
			present, i = parseNumber(template, i, end)
			if afterIndex && present {
				goodArgNum = false
			}
		}

		if i+1 < end && template[i] == '.' {
			i++
			if afterIndex {
				goodArgNum = false
			}
			argNum, i, afterIndex = argNumber(template, i, argNum, len(args), &goodArgNum, &reordered)
			if i < end && template[i] == '*' {
				i++
				var ok bool
				ok, argNum = precisionFromArg(args, argNum)
				if !ok {
					return &BadDirectiveError{Directive: "%!(BADPREC)", Offset: start}
				}
				afterIndex = false
			} else {
				_, i = parseNumber(template, i, end)
			}
		}

		if !afterIndex {
			argNum, i, _ = argNumber(template, i, argNum, len(args), &goodArgNum, &reordered)
		}

		if i >= end {
			return &BadDirectiveError{Directive: "%!(NOVERB)", Offset: start}
		}
		verb, size := rune(template[i]), 1
		if verb >= utf8.RuneSelf {
			verb, size = utf8.DecodeRuneInString(template[i:])
		}
		i += size

		switch {
		case verb == '%':
		case !goodArgNum:
			return &BadDirectiveError{Directive: fmt.Sprintf("%%!%c(BADINDEX)", verb), Offset: start}
		case argNum >= len(args):
			return &BadDirectiveError{Directive: fmt.Sprintf("%%!%c(MISSING)", verb), Offset: start}
		default:
			if !argAccepts(args[argNum], verb, sharp && verb == 'v') {
				return &BadDirectiveError{Directive: fmt.Sprintf("%%!%c(%T)", verb, args[argNum]), Offset: start}
			}
			argNum++
		}
	}

	if !reordered && argNum < len(args) {
		extra := make([]string, 0, len(args)-argNum)
		for _, arg := range args[argNum:] {
			extra = append(extra, fmt.Sprintf("%T", arg))
		}
		return &BadDirectiveError{Directive: "%!(EXTRA " + strings.Join(extra, ", ") + ")", Offset: end}
	}
	return nil
}

// argNumber parses an explicit "[n]" argument index at template[i].
func argNumber(template string, i, argNum, numArgs int, goodArgNum, reordered *bool) (int, int, bool) {
	if i >= len(template) || template[i] != '[' {
		return argNum, i, false
	}
	*reordered = true
	index, width, ok := parseArgNumber(template[i:])
	if ok && 0 <= index && index < numArgs {
		return index, i + width, true
	}
	*goodArgNum = false
	return argNum, i + width, ok
}

// parseArgNumber parses "[n]" and returns the zero-based index and the
// number of bytes consumed.
func parseArgNumber(template string) (index, width int, ok bool) {
	if len(template) < 3 {
		return 0, 1, false
	}
	for i := 1; i < len(template); i++ {
		if template[i] == ']' {
			number, present, next := parseNumberValue(template, 1, i)
			if !present || next != i {
				return 0, i + 1, false
			}
			return number - 1, i + 1, true
		}
	}
	return 0, 1, false
}

func parseNumber(template string, start, end int) (bool, int) {
	_, present, next := parseNumberValue(template, start, end)
	return present, next
}

func parseNumberValue(template string, start, end int) (number int, present bool, next int) {
	if start >= end {
		return 0, false, end
	}
	for next = start; next < end && '0' <= template[next] && template[next] <= '9'; next++ {
		if tooLarge(number) {
			return 0, false, end
		}
		number = number*10 + int(template[next]-'0')
		present = true
	}
	return number, present, next
}

func tooLarge(x int) bool {
	const limit = 1e6
	return x > limit || x < -limit
}

// intFromArg reports whether args[argNum] can serve as a "*" width and
// returns the next argument index.
func intFromArg(args []any, argNum int) (bool, int) {
	_, ok, next := intValue(args, argNum)
	return ok, next
}

// precisionFromArg is intFromArg for "*" precisions, which must also
// be non-negative.
func precisionFromArg(args []any, argNum int) (bool, int) {
	number, ok, next := intValue(args, argNum)
	return ok && number >= 0, next
}

func intValue(args []any, argNum int) (number int, ok bool, next int) {
	if argNum >= len(args) {
		return 0, false, argNum
	}
	value := reflect.ValueOf(args[argNum])
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := value.Int()
		if int64(int(n)) == n {
			number, ok = int(n), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := value.Uint()
		if int64(n) >= 0 && uint64(int(n)) == n {
			number, ok = int(n), true
		}
	}
	if tooLarge(number) {
		number, ok = 0, false
	}
	return number, ok, argNum + 1
}

// argAccepts reports whether fmt formats arg with verb without a
// bad-verb marker. sharpV is set for "%#v".
func argAccepts(arg any, verb rune, sharpV bool) bool {
	if arg == nil {
		return verb == 'T' || verb == 'v'
	}
	switch verb {
	case 'T':
		return true
	case 'p':
		return pointerKind(reflect.ValueOf(arg).Kind())
	case 'w':
		// Only fmt.Errorf wraps errors.
		return false
	}
	if value, ok := arg.(reflect.Value); ok {
		if value.IsValid() && value.CanInterface() && handledByMethod(value.Interface(), verb, sharpV) {
			return true
		}
		return valueAccepts(value, verb, sharpV, 0)
	}
	if handledByMethod(arg, verb, sharpV) {
		return true
	}
	return valueAccepts(reflect.ValueOf(arg), verb, sharpV, 0)
}

// handledByMethod reports whether fmt hands value to one of its
// formatting methods for verb, which then owns the output.
func handledByMethod(value any, verb rune, sharpV bool) bool {
	if _, ok := value.(fmt.Formatter); ok {
		return true
	}
	if sharpV {
		_, ok := value.(fmt.GoStringer)
		return ok
	}
	switch verb {
	case 'v', 's', 'x', 'X', 'q':
		switch value.(type) {
		case error, fmt.Stringer:
			return true
		}
	}
	return false
}

const (
	integerVerbs = "vdboOxXcqU"
	floatVerbs   = "vbgGxXfFeE"
	stringVerbs  = "vsxXq"
	pointerVerbs = "vpbodxX"
)

// valueAccepts mirrors fmt's printValue: composite values are accepted
// only if every element they print accepts verb.
func valueAccepts(value reflect.Value, verb rune, sharpV bool, depth int) bool {
	if depth > 0 && value.IsValid() && value.CanInterface() {
		if handledByMethod(value.Interface(), verb, sharpV) {
			return true
		}
	}

	switch value.Kind() {
	case reflect.Invalid:
		return depth == 0 || verb == 'v'
	case reflect.Bool:
		return verb == 't' || verb == 'v'
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strings.ContainsRune(integerVerbs, verb)
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return strings.ContainsRune(floatVerbs, verb)
	case reflect.String:
		return strings.ContainsRune(stringVerbs, verb)
	case reflect.Map:
		iter := value.MapRange()
		for iter.Next() {
			if !valueAccepts(iter.Key(), verb, sharpV, depth+1) || !valueAccepts(iter.Value(), verb, sharpV, depth+1) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for index := 0; index < value.NumField(); index++ {
			field := value.Field(index)
			if field.Kind() == reflect.Interface && !field.IsNil() {
				field = field.Elem()
			}
			if !valueAccepts(field, verb, sharpV, depth+1) {
				return false
			}
		}
		return true
	case reflect.Interface:
		element := value.Elem()
		if !element.IsValid() {
			return true
		}
		return valueAccepts(element, verb, sharpV, depth+1)
	case reflect.Array, reflect.Slice:
		if strings.ContainsRune("sqxX", verb) && value.Type().Elem().Kind() == reflect.Uint8 {
			return true
		}
		for index := 0; index < value.Len(); index++ {
			if !valueAccepts(value.Index(index), verb, sharpV, depth+1) {
				return false
			}
		}
		return true
	case reflect.Pointer:
		if depth == 0 && !value.IsNil() {
			switch value.Elem().Kind() {
			case reflect.Array, reflect.Slice, reflect.Struct, reflect.Map:
				return valueAccepts(value.Elem(), verb, sharpV, depth+1)
			}
		}
		return strings.ContainsRune(pointerVerbs, verb)
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return strings.ContainsRune(pointerVerbs, verb)
	default:
		return true
	}
}

func pointerKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}
