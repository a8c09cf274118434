package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/steveiliop56/tinynotion/internal/config"

	"github.com/rs/zerolog/log"
)

type Path struct {
	Name        string
	Description string
	Value       any
}

func main() {
	log.Info().Msg("Generating example env file")

	cfg := config.NewDefaultConfiguration()
	paths := make([]Path, 0)

	root := reflect.TypeOf(cfg).Elem()
	rootValue := reflect.ValueOf(cfg).Elem()

	buildPaths(root, rootValue, config.DefaultNamePrefix, &paths)
	compiled := compileEnv(paths)

	err := os.Remove(".env.example")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("Failed to remove example env file")
	}

	err = os.WriteFile(".env.example", compiled, 0644)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to write example env file")
	}
}

func buildPaths(parent reflect.Type, parentValue reflect.Value, parentPath string, paths *[]Path) {
	for i := 0; i < parent.NumField(); i++ {
		field := parent.Field(i)
		fieldType := field.Type
		fieldValue := parentValue.Field(i)
		switch fieldType.Kind() {
		case reflect.Struct:
			childPath := parentPath + strings.ToUpper(field.Name) + "_"
			buildPaths(fieldType, fieldValue, childPath, paths)
		case reflect.Bool, reflect.String, reflect.Int:
			buildPath(field, fieldValue, parentPath, paths)
		default:
			log.Info().Str("type", fieldType.Kind().String()).Msg("Unknown type")
		}
	}
}

func buildPath(field reflect.StructField, fieldValue reflect.Value, parent string, paths *[]Path) {
	// internal options, only settable through flags
	if field.Tag.Get("yaml") == "-" {
		return
	}

	path := Path{
		Name:        parent + strings.ToUpper(field.Name),
		Description: field.Tag.Get("description"),
	}

	switch fieldValue.Kind() {
	case reflect.String:
		if st := fieldValue.String(); st != "" {
			path.Value = fmt.Sprintf(`"%s"`, st)
		} else {
			path.Value = ""
		}
	default:
		path.Value = fieldValue.Interface()
	}

	*paths = append(*paths, path)
}

func compileEnv(paths []Path) []byte {
	buffer := bytes.Buffer{}
	buffer.WriteString("# tinynotion example configuration\n\n")

	for _, path := range paths {
		buffer.WriteString("# ")
		buffer.WriteString(path.Description)
		buffer.WriteString("\n")
		buffer.WriteString(path.Name)
		buffer.WriteString("=")
		fmt.Fprintf(&buffer, "%v", path.Value)
		buffer.WriteString("\n\n")
	}

	return buffer.Bytes()
}
