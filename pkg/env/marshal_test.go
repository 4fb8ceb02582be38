package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Path     string        `env:"SAMPLE_PATH" envDefault:"faq.json"`
	Interval time.Duration `env:"SAMPLE_INTERVAL"`
	Enabled  bool          `env:"SAMPLE_ENABLED"`
	Port     int           `env:"SAMPLE_PORT,required"`
	Prompt   string        `env:"SAMPLE_PROMPT"`
	Key      string        `env:"SAMPLE_KEY" secret:"true"`
	Empty    string        `env:"SAMPLE_EMPTY"`
	untagged string
}

func TestMarshalEnv(t *testing.T) {
	s := &sample{
		Path:     "kb.yaml",
		Interval: 2 * time.Second,
		Enabled:  true,
		Port:     3000,
		Prompt:   "be brief, be kind",
		Key:      "sk-1234567890",
		untagged: "ignored",
	}

	out, err := MarshalEnv(s)
	require.NoError(t, err)

	assert.Contains(t, out, "SAMPLE_PATH=kb.yaml\n")
	assert.Contains(t, out, "SAMPLE_INTERVAL=2s\n")
	assert.Contains(t, out, "SAMPLE_ENABLED=true\n")
	assert.Contains(t, out, "SAMPLE_PORT=3000\n")
	assert.Contains(t, out, `SAMPLE_PROMPT="be brief, be kind"`)
	assert.Contains(t, out, "SAMPLE_KEY=sk*********90\n")
	assert.NotContains(t, out, "SAMPLE_EMPTY")
	assert.NotContains(t, out, "ignored")
}

func TestMarshalEnv_RejectsNonPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}

func TestMarshalEnv_EmptyStruct(t *testing.T) {
	out, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestFormatEnv(t *testing.T) {
	out := FormatEnv(map[string]string{
		"B_KEY": "two words",
		"A_KEY": "plain",
	})

	assert.Equal(t, "A_KEY=plain\nB_KEY=\"two words\"\n", out)
	assert.Empty(t, FormatEnv(nil))
}
