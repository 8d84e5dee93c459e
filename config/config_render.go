package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/0xPolygon/cdk-enconfig/envmap"
	"github.com/0xPolygon/cdk-enconfig/log"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

var (
	ErrCycleVars                 = errors.New("cycle vars")
	ErrMissingVars               = errors.New("missing vars")
	ErrUnsupportedConfigFileType = errors.New("unsupported config file type")

	// A = {{B}} is not valid TOML, it's quoted and typed before parsing: A = "{{B:int}}"
	unquotedVarRe = regexp.MustCompile(`=\s*\{\{([^}:]+)\}\}`)
	quotedVarRe   = regexp.MustCompile(`=\s*\"\{\{([^}:]+:int)\}\}\"`)
	typedVarRe    = regexp.MustCompile(`\{\{([^}:]+:int)\}\}`)
)

// FileData is the content of a config file, Name is only used for reporting
type FileData struct {
	Name    string
	Content string
}

// Renderer merges config files and resolves the {{var}} references inside them.
// A var is resolved with, by priority:
//   - the environment variable <EnvPrefix>_<var> (dots replaced by '_')
//   - the value of the key var on the merged files
type Renderer struct {
	// Files to merge, later files override the values of previous ones
	Files []FileData
	// LookupEnv resolves environment variables
	LookupEnv func(key string) (string, bool)
	EnvPrefix string
}

// NewRenderer returns a Renderer resolving environment variables from env.
// A nil env disables the overrides.
func NewRenderer(files []FileData, envPrefix string, env envmap.Mapping) *Renderer {
	return &Renderer{
		Files:     files,
		LookupEnv: env.Lookup,
		EnvPrefix: envPrefix,
	}
}

// Render merges all the files and resolves the vars of the result
func (r *Renderer) Render() (string, error) {
	merged, err := r.Merge()
	if err != nil {
		return "", fmt.Errorf("fail to merge files. Err: %w", err)
	}
	return r.ResolveVars(merged)
}

// Merge overlays the files in order, vars are kept unresolved
func (r *Renderer) Merge() (string, error) {
	k := koanf.New(".")
	for _, file := range r.Files {
		content := quoteVars(file.Content)
		if err := k.Load(rawbytes.Provider([]byte(content)), toml.Parser()); err != nil {
			log.Errorf("error loading file %s. Err:%v. FileData: %v", file.Name, err, content)
			return "", fmt.Errorf("fail to load converted template %s to toml. Err: %w", file.Name, err)
		}
	}
	marshaled, err := k.Marshal(toml.Parser())
	if err != nil {
		return "", fmt.Errorf("fail to marshal to toml. Err: %w", err)
	}
	return unquoteVars(string(marshaled)), nil
}

// ResolveVars replaces the vars of data. It fails with ErrMissingVars if a var
// is neither defined nor on the environment, and with ErrCycleVars if the
// vars reference each other (A = {{B}}, B = {{A}}).
func (r *Renderer) ResolveVars(data string) (string, error) {
	tpl, values, err := r.parseTemplate(data)
	if err != nil {
		return "", err
	}
	// Undefined vars keep the template form
	rendered := removeTypeMarks(r.execute(tpl, values))
	if missing := r.missingVars(tpl, values); len(missing) > 0 {
		return rendered, fmt.Errorf("missing vars: %v. Err: %w", missing, ErrMissingVars)
	}
	// Every var is defined, so whatever is left references another var
	resolved, err := r.resolveChains(rendered)
	if err != nil {
		return data, err
	}
	return resolved, nil
}

// resolveChains renders again until no var is left, each pass must reduce
// the number of pending vars, otherwise there is a cycle
func (r *Renderer) resolveChains(partial string) (string, error) {
	current := unquoteVars(partial)
	pending := pendingVars(current)
	if len(pending) == 0 {
		return partial, nil
	}
	log.Debugf("resolving chained vars: %v", pending)
	for len(pending) > 0 {
		previous := pending
		tpl, values, err := r.parseTemplate(current)
		if err != nil {
			log.Errorf("fail to parse template resolving chained vars. Err: %v. Data:%s", err, current)
			return "", fmt.Errorf("fail to read template resolving chained vars. Err: %w", err)
		}
		current = removeTypeMarks(unquoteVars(r.execute(tpl, values)))
		pending = pendingVars(current)
		if len(pending) == len(previous) {
			return partial, fmt.Errorf("not resolved cycle vars: %v. Err: %w", pending, ErrCycleVars)
		}
	}
	return current, nil
}

// parseTemplate returns the template of data and the values it defines.
// The vars in data must be unquoted: A = {{B}} and not A = "{{B}}"
func (r *Renderer) parseTemplate(data string) (*fasttemplate.Template, map[string]interface{}, error) {
	tpl, err := fasttemplate.NewTemplate(data, startTag, endTag)
	if err != nil {
		return nil, nil, fmt.Errorf("fail to load template. Err:%w", err)
	}
	quoted := quoteVars(data)
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(quoted)), toml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("error parsing template values. Content: %s. Err: %w", quoted, err)
	}
	return tpl, k.All(), nil
}

func (r *Renderer) execute(tpl *fasttemplate.Template, values map[string]interface{}) string {
	return tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if v, ok := r.lookupVar(tag); ok {
			return w.Write([]byte(v))
		}
		if v, ok := values[tag]; ok {
			return w.Write([]byte(fmt.Sprintf("%v", v)))
		}
		return w.Write([]byte(startTag + tag + endTag))
	})
}

// missingVars returns the vars of tpl that are neither in values nor in the environment
func (r *Renderer) missingVars(tpl *fasttemplate.Template, values map[string]interface{}) []string {
	var missing []string
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if _, ok := r.lookupVar(tag); ok {
			return 0, nil
		}
		if _, ok := values[tag]; !ok && !slices.Contains(missing, tag) {
			missing = append(missing, tag)
		}
		return 0, nil
	})
	return missing
}

func (r *Renderer) lookupVar(tag string) (string, bool) {
	return r.LookupEnv(r.EnvPrefix + "_" + strings.ReplaceAll(tag, ".", "_"))
}

// pendingVars returns every var of data
func pendingVars(data string) []string {
	tpl, err := fasttemplate.NewTemplate(data, startTag, endTag)
	if err != nil {
		return []string{}
	}
	var vars []string
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		vars = append(vars, tag)
		return 0, nil
	})
	return vars
}

func quoteVars(data string) string {
	return unquotedVarRe.ReplaceAllString(data, `= "{{${1}:int}}"`)
}

func unquoteVars(data string) string {
	return quotedVarRe.ReplaceAllStringFunc(data, func(match string) string {
		submatch := quotedVarRe.FindStringSubmatch(match)
		if len(submatch) > 1 {
			return "= " + startTag + strings.Split(submatch[1], ":")[0] + endTag
		}
		return match
	})
}

func removeTypeMarks(data string) string {
	return typedVarRe.ReplaceAllStringFunc(data, func(match string) string {
		submatch := typedVarRe.FindStringSubmatch(match)
		if len(submatch) > 1 {
			return startTag + strings.Split(submatch[1], ":")[0] + endTag
		}
		return match
	})
}

func readFileToString(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// convertFileToToml translates a json config file to TOML, unknown types are
// assumed to be TOML already
func convertFileToToml(data string, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "json":
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider([]byte(data)), json.Parser()); err != nil {
			return data, fmt.Errorf("error loading json file. Err: %w", err)
		}
		converted, err := toml.Parser().Marshal(k.Raw())
		if err != nil {
			return data, fmt.Errorf("error converting json to toml. Err: %w", err)
		}
		return string(converted), nil
	case "yml", "yaml", "ini":
		return data, fmt.Errorf("cant convert from %s to TOML. Err: %w", fileType, ErrUnsupportedConfigFileType)
	default:
		log.Warnf("filetype %s unknown, assuming is a TOML file", fileType)
		return data, nil
	}
}
