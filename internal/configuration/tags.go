package configuration

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/pelletier/go-toml"
)

type errorTag struct {
	v interface{}
}

func (e *errorTag) Error() string {
	return fmt.Sprintf("cannot parse '%T' as string", e.v)
}

func (e *errorTag) Is(o error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(o)
}

// ErrUnsupportedTag matches tags whose value is not a scalar.
var ErrUnsupportedTag error = &errorTag{}

// ReadTags reads a flat TOML table and renders every value as a string.
func ReadTags(in io.Reader) (map[string]string, error) {
	data, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}

	var rawTags map[string]interface{}
	if err := toml.Unmarshal(data, &rawTags); err != nil {
		return nil, fmt.Errorf("cannot parse TOML: %w", err)
	}

	tags := make(map[string]string, len(rawTags))
	for k, v := range rawTags {
		switch v := v.(type) {
		case string:
			tags[k] = v
		case int64:
			tags[k] = strconv.FormatInt(v, 10)
		case uint64:
			tags[k] = strconv.FormatUint(v, 10)
		case float64:
			tags[k] = strconv.FormatFloat(v, 'g', -1, 64)
		case bool:
			tags[k] = strconv.FormatBool(v)
		case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
			tags[k] = v.(fmt.Stringer).String()
		case time.Time:
			tags[k] = v.Format(time.RFC3339)
		default:
			return nil, &errorTag{v}
		}
	}

	return tags, nil
}

// ReadTagsFile reads tag data from file.
func ReadTagsFile(file string) (map[string]string, error) {
	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("cannot open '%v' for reading: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	tags, err := ReadTags(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read tags file: %w", err)
	}
	return tags, nil
}
