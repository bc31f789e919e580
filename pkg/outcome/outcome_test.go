package outcome_test

import (
	"testing"

	"github.com/arthur-debert/plugboot/pkg/outcome"
	"github.com/arthur-debert/plugboot/pkg/runner"
	"github.com/stretchr/testify/assert"
)

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		name    string
		message string
		phrases outcome.PhraseSet
		want    bool
	}{
		{"install success", "Successfully installed tqdm-4.64.0", outcome.InstallPhrases, true},
		{"already satisfied", "Requirement already satisfied: tqdm in ./venv", outcome.InstallPhrases, true},
		{"install failure", "ERROR: No matching distribution found for nothing==0.0", outcome.InstallPhrases, false},
		{"clone done", "Cloning into 'repo'...\nReceiving objects: 100% (10/10), done.", outcome.ClonePhrases, true},
		{"clone without done", "fatal: repository not found", outcome.ClonePhrases, false},
		{"empty set never matches", "Successfully installed", outcome.PhraseSet{}, false},
		{"nil set never matches", "anything", nil, false},
		{"match inside larger word", "UnSuccessfullyish", outcome.InstallPhrases, true},
		{"done inside abandoned", "abandoned", outcome.ClonePhrases, true},
		{"case sensitive", "successfully installed", outcome.InstallPhrases, false},
		{"empty message", "", outcome.InstallPhrases, false},
		{"empty phrase matches anything", "x", outcome.NewPhraseSet(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outcome.IsSuccess(tt.message, tt.phrases))
		})
	}
}

func TestIsSuccess_OrderInsensitive(t *testing.T) {
	message := "Requirement already satisfied"
	forward := outcome.NewPhraseSet("Successfully", "already satisfied")
	reverse := outcome.NewPhraseSet("already satisfied", "Successfully")

	assert.Equal(t, outcome.IsSuccess(message, forward), outcome.IsSuccess(message, reverse))
}

func TestMatch(t *testing.T) {
	phrase, ok := outcome.Match("created virtual environment CPython3.10", outcome.VenvPhrases)
	assert.True(t, ok)
	assert.Equal(t, "created virtual", phrase)

	_, ok = outcome.Match("nope", outcome.VenvPhrases)
	assert.False(t, ok)
}

func TestNewPhraseSet_Copies(t *testing.T) {
	src := []string{"done"}
	set := outcome.NewPhraseSet(src...)
	src[0] = "changed"

	assert.Equal(t, outcome.PhraseSet{"done"}, set)
}

func TestClassify_UsesStderrFirst(t *testing.T) {
	result := runner.ExecutionResult{
		Stdout: "Successfully installed widget",
		Stderr: "WARNING: You are using pip version 21.0",
	}

	assert.False(t, outcome.Classify(result, outcome.InstallPhrases))

	result.Stderr = ""
	assert.True(t, outcome.Classify(result, outcome.InstallPhrases))
}
