package extract

import (
	"regexp"
	"sort"
	"strings"
)

type Category string

const (
	Languages     Category = "languages"
	Frameworks    Category = "frameworks"
	Tools         Category = "tools"
	Methodologies Category = "methodologies"
	SoftSkills    Category = "soft_skills"
)

var vocabularyByCategory = map[Category][]string{
	Languages: {
		"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust",
		"swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css", "bash", "powershell",
	},
	Frameworks: {
		"react", "angular", "vue", "node.js", "express", "django", "flask", "spring", "laravel",
		"rails", "asp.net", "jquery", "bootstrap", "tailwind", "tensorflow", "pytorch", "pandas",
		"numpy", "scikit-learn", "keras", "opencv", "fastapi", "grpc",
	},
	Tools: {
		"docker", "kubernetes", "jenkins", "git", "github", "gitlab", "aws", "azure", "gcp",
		"terraform", "ansible", "chef", "puppet", "vagrant", "nginx", "apache", "redis",
		"elasticsearch", "mongodb", "postgresql", "mysql", "oracle", "cassandra", "kafka",
		"hadoop", "spark", "linux", "prometheus", "grafana",
	},
	Methodologies: {
		"agile", "scrum", "kanban", "devops", "ci/cd", "tdd", "bdd", "microservices",
		"rest api", "graphql", "soap", "oauth", "jwt", "ssl", "https", "encryption",
		"machine learning", "deep learning", "artificial intelligence", "data science",
		"big data", "cloud computing", "blockchain", "iot", "cybersecurity", "data analysis",
		"data visualization",
	},
	SoftSkills: {
		"leadership", "project management", "team management", "communication", "problem solving",
		"analytical thinking", "strategic planning", "stakeholder management", "mentoring",
		"cross-functional collaboration", "client management", "vendor management", "adaptability",
		"creativity", "critical thinking", "negotiation", "time management", "attention to detail",
		"innovation",
	},
}

// aliases maps common short forms to their canonical vocabulary entry.
var aliases = map[string]string{
	"k8s":      "kubernetes",
	"golang":   "go",
	"postgres": "postgresql",
	"js":       "javascript",
	"ts":       "typescript",
}

// noiseWords are never reported as skills.
var noiseWords = map[string]struct{}{
	"experience": {}, "experienced": {}, "skills": {}, "skill": {}, "ability": {},
	"knowledge": {}, "proficient": {}, "expertise": {}, "years": {}, "team": {},
	"work": {}, "using": {}, "strong": {}, "good": {}, "excellent": {},
	"tools": {}, "technologies": {},
}

var (
	vocabulary = map[string]struct{}{}
	// single covers every entry and alias, matched as written.
	single []termMatcher
	// phrases covers multi-word entries with any run of whitespace between words.
	phrases []termMatcher
)

type termMatcher struct {
	term      string
	canonical string
	re        *regexp.Regexp
}

// A hyphen is a boundary on both sides so "Python-based" still yields python.
// Terms of up to two characters keep hyphens as part of the word, otherwise
// "go-to-market" would report go.
const (
	leftBoundary       = `(?:^|[^\p{L}\p{N}+#.&])`
	rightBoundary      = `(?:$|[^\p{L}\p{N}+#&])`
	shortLeftBoundary  = `(?:^|[^\p{L}\p{N}+#.&\-])`
	shortRightBoundary = `(?:$|[^\p{L}\p{N}+#&\-])`

	shortTermLen = 2
)

func init() {
	for _, entries := range vocabularyByCategory {
		for _, e := range entries {
			vocabulary[e] = struct{}{}
		}
	}

	for _, e := range sortedKeys(vocabulary) {
		single = append(single, newTermMatcher(e, e, regexp.QuoteMeta(e)))

		words := strings.Fields(e)
		if len(words) < 2 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		phrases = append(phrases, newTermMatcher(e, e, strings.Join(quoted, `\s+`)))
	}

	for _, alias := range sortedKeys(aliases) {
		single = append(single, newTermMatcher(alias, aliases[alias], regexp.QuoteMeta(alias)))
	}
}

func newTermMatcher(term, canonical, pattern string) termMatcher {
	left, right := leftBoundary, rightBoundary
	if len(term) <= shortTermLen {
		left, right = shortLeftBoundary, shortRightBoundary
	}
	return termMatcher{
		term:      term,
		canonical: canonical,
		re:        regexp.MustCompile(`(?i)` + left + pattern + right),
	}
}

// Vocabulary returns the flat reference skill set, sorted.
func Vocabulary() []string {
	return sortedKeys(vocabulary)
}

// VocabularyByCategory returns the entries of one category.
func VocabularyByCategory(c Category) []string {
	return append([]string(nil), vocabularyByCategory[c]...)
}

// InVocabulary reports whether skill, or the entry it is an alias of, belongs
// to the reference vocabulary.
func InVocabulary(skill string) bool {
	_, ok := vocabulary[Canonical(skill)]
	return ok
}

// Canonical lowercases skill and resolves known aliases.
func Canonical(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	if c, ok := aliases[s]; ok {
		return c
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
