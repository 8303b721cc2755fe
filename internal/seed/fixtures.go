package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

var validate = validator.New()

// Fixtures is the content of a seed file. Rows reference other rows by
// natural key (user name, post content), never by id.
type Fixtures struct {
	Users       []UserFixture       `yaml:"users" validate:"dive"`
	Posts       []PostFixture       `yaml:"posts" validate:"dive"`
	Comments    []CommentFixture    `yaml:"comments" validate:"dive"`
	Connections []ConnectionFixture `yaml:"connections" validate:"dive"`
	Messages    []MessageFixture    `yaml:"messages" validate:"dive"`
}

// UserFixture is a user keyed by name.
type UserFixture struct {
	Name     string   `yaml:"name" validate:"required"`
	JobTitle *string  `yaml:"jobTitle"`
	Skills   []string `yaml:"skills"`
}

// PostFixture is a post keyed by content. Author names a user.
type PostFixture struct {
	Content  string  `yaml:"content" validate:"required"`
	MediaURL *string `yaml:"mediaUrl"`
	Author   string  `yaml:"author" validate:"required"`
}

// CommentFixture is a comment on the post whose content matches Post.
type CommentFixture struct {
	Content string `yaml:"content" validate:"required"`
	Post    string `yaml:"post" validate:"required"`
	Author  string `yaml:"author" validate:"required"`
}

// ConnectionFixture links two distinct users by name.
type ConnectionFixture struct {
	User1 string `yaml:"user1" validate:"required"`
	User2 string `yaml:"user2" validate:"required,nefield=User1"`
}

// MessageFixture is a message keyed by content.
type MessageFixture struct {
	Content  string `yaml:"content" validate:"required"`
	Sender   string `yaml:"sender" validate:"required"`
	Receiver string `yaml:"receiver" validate:"required"`
}

// DefaultFixtures returns the sample network bundled with the binary.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads and parses a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes YAML fixtures and checks required fields.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperrors.WrapInvalid(fmt.Errorf("failed to parse fixtures: %w", err), "seed", "ParseFixtures")
	}
	if err := validate.Struct(&f); err != nil {
		return nil, apperrors.WrapInvalid(fmt.Errorf("invalid fixtures: %w", err), "seed", "ParseFixtures")
	}
	return &f, nil
}
