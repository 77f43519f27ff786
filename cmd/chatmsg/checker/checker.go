package checker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/lifei6671/chatmsg"
)

type LangFile struct {
	Language string
	Path     string
	Document chatmsg.Document
}

type Result struct {
	Reference     string
	Languages     []string
	MissingKeys   map[string][]string
	RedundantKeys map[string][]string
	SyntaxErrors  map[string]map[string]error // lang -> key -> err
	AllKeys       []string
}

// HasIssues reports whether any language has a missing or redundant key or
// a pattern that does not parse.
func (r *Result) HasIssues() bool {
	for _, arr := range r.MissingKeys {
		if len(arr) > 0 {
			return true
		}
	}
	for _, arr := range r.RedundantKeys {
		if len(arr) > 0 {
			return true
		}
	}
	for _, errs := range r.SyntaxErrors {
		if len(errs) > 0 {
			return true
		}
	}
	return false
}

// CheckLocales performs:
//  1. key alignment check against the reference language (missing / redundant)
//  2. pattern syntax check via chatmsg.ValidateFormat()
func CheckLocales(dir, reference string) (*Result, error) {
	files, err := scanYAML(dir)
	if err != nil {
		return nil, err
	}

	byLang := lo.SliceToMap(files, func(f LangFile) (string, LangFile) {
		return f.Language, f
	})
	ref, ok := byLang[reference]
	if !ok {
		return nil, fmt.Errorf("reference language %s not found in %s", reference, dir)
	}
	refKeys := ref.Document.Keys()

	missing := make(map[string][]string)
	redundant := make(map[string][]string)
	syntaxErrors := make(map[string]map[string]error)

	for _, file := range files {
		keys := lo.Keys(map[string]chatmsg.Node(file.Document))
		miss, extra := lo.Difference(refKeys, keys)
		if len(miss) > 0 {
			sort.Strings(miss)
			missing[file.Language] = miss
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			redundant[file.Language] = extra
		}

		for key, patterns := range file.Document.Literals() {
			for _, p := range patterns {
				if err := chatmsg.ValidateFormat(p); err != nil {
					if syntaxErrors[file.Language] == nil {
						syntaxErrors[file.Language] = make(map[string]error)
					}
					syntaxErrors[file.Language][key] = err
					break
				}
			}
		}
	}

	langs := lo.Keys(byLang)
	sort.Strings(langs)

	return &Result{
		Reference:     reference,
		Languages:     langs,
		MissingKeys:   missing,
		RedundantKeys: redundant,
		SyntaxErrors:  syntaxErrors,
		AllKeys:       refKeys,
	}, nil
}

func scanYAML(dir string) ([]LangFile, error) {
	var res []LangFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		doc, err := chatmsg.ParseDocument(data)
		if err != nil {
			return fmt.Errorf("yaml error %s: %w", path, err)
		}

		res = append(res, LangFile{
			Language: strings.TrimSuffix(filepath.Base(path), ext),
			Path:     path,
			Document: doc,
		})
		return nil
	})

	return res, err
}
