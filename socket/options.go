package socket

import (
	"fmt"
	"math"
	"time"

	"github.com/scalemsg/spbind/errors"
	"github.com/scalemsg/spbind/native"
)

// OptionType selects the native representation for an option get or set.
type OptionType int

const (
	OptBool OptionType = iota + 1
	OptInt
	OptUint64
	OptSize
	OptMs
	OptString
)

func (t OptionType) String() string {
	switch t {
	case OptBool:
		return "bool"
	case OptInt:
		return "int"
	case OptUint64:
		return "uint64"
	case OptSize:
		return "size"
	case OptMs:
		return "ms"
	case OptString:
		return "string"
	default:
		return "invalid"
	}
}

// SetOption marshals value to the engine, inferring the native representation
// from the host type:
//
//	bool                            -> boolean path
//	time.Duration                   -> millisecond path
//	int-like, size-typed option     -> size path
//	int-like within int32 range     -> signed integer path
//	int-like above int32 range      -> unsigned 64-bit path
//	uint64                          -> unsigned 64-bit path
//	string, []byte                  -> string path
//
// Any other host type fails with invalid_argument before the engine is
// called. Negative values below the int32 range have no native
// representation and fail the same way.
func (s *Socket) SetOption(name string, value any) error {
	const op = "socket_set_option"
	if err := s.guard(op); err != nil {
		return err
	}

	switch v := value.(type) {
	case bool:
		return s.optCode(op, native.SocketSetBool(s.h, name, v))
	case time.Duration:
		return s.optCode(op, native.SocketSetMs(s.h, name, int(v/time.Millisecond)))
	case string:
		return s.optCode(op, native.SocketSetString(s.h, name, v))
	case []byte:
		return s.optCode(op, native.SocketSetString(s.h, name, string(v)))
	case uint64:
		return s.optCode(op, native.SocketSetUint64(s.h, name, v))
	}

	if n, ok := intValue(value); ok {
		// Size-typed options take the size path regardless of magnitude.
		if name == native.OptRecvSizeMax {
			return s.optCode(op, native.SocketSetSize(s.h, name, n))
		}
		switch {
		case n > math.MaxInt32:
			return s.optCode(op, native.SocketSetUint64(s.h, name, uint64(n)))
		case n < math.MinInt32:
			return errors.InvalidArg(op, fmt.Sprintf("value %d below int32 range", n))
		default:
			return s.optCode(op, native.SocketSetInt(s.h, name, int(n)))
		}
	}

	return errors.InvalidArg(op, fmt.Sprintf("unsupported option value type %T", value))
}

// SetOptionTyped marshals value using an explicit type tag, overriding
// inference. A value that cannot represent the tagged type fails with
// invalid_argument before any engine call.
func (s *Socket) SetOptionTyped(name string, t OptionType, value any) error {
	const op = "socket_set_option"
	if err := s.guard(op); err != nil {
		return err
	}

	switch t {
	case OptBool:
		b, ok := value.(bool)
		if !ok {
			return errors.InvalidArg(op, fmt.Sprintf("bool option from %T", value))
		}
		return s.optCode(op, native.SocketSetBool(s.h, name, b))
	case OptMs:
		if d, ok := value.(time.Duration); ok {
			return s.optCode(op, native.SocketSetMs(s.h, name, int(d/time.Millisecond)))
		}
		n, ok := intValue(value)
		if !ok {
			return errors.InvalidArg(op, fmt.Sprintf("duration option from %T", value))
		}
		return s.optCode(op, native.SocketSetMs(s.h, name, int(n)))
	case OptInt:
		n, ok := intValue(value)
		if !ok || n > math.MaxInt32 || n < math.MinInt32 {
			return errors.InvalidArg(op, fmt.Sprintf("int option from %T value %v", value, value))
		}
		return s.optCode(op, native.SocketSetInt(s.h, name, int(n)))
	case OptSize:
		n, ok := intValue(value)
		if !ok || n < 0 {
			return errors.InvalidArg(op, fmt.Sprintf("size option from %T value %v", value, value))
		}
		return s.optCode(op, native.SocketSetSize(s.h, name, n))
	case OptUint64:
		if u, ok := value.(uint64); ok {
			return s.optCode(op, native.SocketSetUint64(s.h, name, u))
		}
		n, ok := intValue(value)
		if !ok || n < 0 {
			return errors.InvalidArg(op, fmt.Sprintf("uint64 option from %T value %v", value, value))
		}
		return s.optCode(op, native.SocketSetUint64(s.h, name, uint64(n)))
	case OptString:
		switch v := value.(type) {
		case string:
			return s.optCode(op, native.SocketSetString(s.h, name, v))
		case []byte:
			return s.optCode(op, native.SocketSetString(s.h, name, string(v)))
		}
		return errors.InvalidArg(op, fmt.Sprintf("string option from %T", value))
	default:
		return errors.InvalidArg(op, fmt.Sprintf("unrecognized option type %d", int(t)))
	}
}

// GetOption reads an option in the requested native representation. The
// returned value is bool, int (also for ms), int64 (size), uint64, or
// string according to the tag. An unrecognized tag fails with
// invalid_argument before any engine call.
func (s *Socket) GetOption(name string, t OptionType) (any, error) {
	const op = "socket_get_option"
	if err := s.guard(op); err != nil {
		return nil, err
	}

	switch t {
	case OptBool:
		v, code := native.SocketGetBool(s.h, name)
		return v, s.optCode(op, code)
	case OptInt:
		v, code := native.SocketGetInt(s.h, name)
		return v, s.optCode(op, code)
	case OptUint64:
		v, code := native.SocketGetUint64(s.h, name)
		return v, s.optCode(op, code)
	case OptSize:
		v, code := native.SocketGetSize(s.h, name)
		return v, s.optCode(op, code)
	case OptMs:
		v, code := native.SocketGetMs(s.h, name)
		return v, s.optCode(op, code)
	case OptString:
		v, code := native.SocketGetString(s.h, name)
		return v, s.optCode(op, code)
	default:
		return nil, errors.InvalidArg(op, fmt.Sprintf("unrecognized option type %d", int(t)))
	}
}

// GetOptionMs reads a duration option in milliseconds.
func (s *Socket) GetOptionMs(name string) (int, error) {
	v, err := s.GetOption(name, OptMs)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// GetOptionBool reads a boolean option.
func (s *Socket) GetOptionBool(name string) (bool, error) {
	v, err := s.GetOption(name, OptBool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// GetOptionInt reads an integer option.
func (s *Socket) GetOptionInt(name string) (int, error) {
	v, err := s.GetOption(name, OptInt)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// GetOptionSize reads a size option.
func (s *Socket) GetOptionSize(name string) (int64, error) {
	v, err := s.GetOption(name, OptSize)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// GetOptionString reads a string option. The result is caller-owned.
func (s *Socket) GetOptionString(name string) (string, error) {
	v, err := s.GetOption(name, OptString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Socket) optCode(op string, code errors.Code) error {
	if code == 0 {
		return nil
	}
	return errors.FromCode(op, code)
}

// intValue normalizes the signed and small unsigned integer kinds onto
// int64. uint64 is excluded; it has its own explicit path.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
