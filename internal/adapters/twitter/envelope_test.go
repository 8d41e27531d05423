package twitter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tweetsense/internal/domain"
	"tweetsense/test/fixtures"
)

func TestParseLookup_DataVariant_ReturnsFirstRecord(t *testing.T) {
	// Arrange
	body := []byte(fixtures.LookupFound(fixtures.ExistingTweetID, "hello"))

	// Act
	result, err := parseLookup(200, body)

	// Assert
	require.NoError(t, err)
	tweet, ok := result.Tweet()
	require.True(t, ok, "expected a tweet")
	assert.Equal(t, domain.Tweet{ID: fixtures.ExistingTweetID, Text: "hello"}, tweet)
}

func TestParseLookup_ManyRecords_OnlyFirstIsUsed(t *testing.T) {
	result, err := parseLookup(200, []byte(fixtures.LookupFoundMany()))

	require.NoError(t, err)
	tweet, ok := result.Tweet()
	require.True(t, ok)
	assert.Equal(t, "1111111111111111111", tweet.ID)
	assert.Equal(t, "first", tweet.Text)
}

func TestParseLookup_ErrorVariant_MapsTitleAndDetail(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantError   string
	}{
		{
			name:        "not found",
			status:      200,
			body:        fixtures.LookupNotFound(fixtures.MissingTweetID),
			wantMessage: "Not Found Error",
			wantError:   "Could not find tweet with ids: [0000000000000000000].",
		},
		{
			name:        "invalid id",
			status:      400,
			body:        fixtures.LookupInvalidID("abcdefghijklmnopqrs"),
			wantMessage: "Invalid Request",
			wantError:   "One or more parameters to your request was invalid.",
		},
		{
			name:        "top-level problem",
			status:      401,
			body:        fixtures.LookupUnauthorized(),
			wantMessage: "Unauthorized",
			wantError:   "Unauthorized",
		},
		{
			name:        "empty data falls through to errors",
			status:      200,
			body:        `{"data":[],"errors":[{"title":"T","detail":"D"}]}`,
			wantMessage: "T",
			wantError:   "D",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			result, err := parseLookup(tc.status, []byte(tc.body))

			// Assert
			require.NoError(t, err)
			failure, ok := result.Failure()
			require.True(t, ok, "expected a failure")
			assert.Equal(t, tc.wantMessage, failure.Message)
			assert.Equal(t, tc.wantError, failure.Error)
		})
	}
}

func TestParseLookup_ExtractionFault_BecomesFailure(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{name: "record without text", body: fixtures.LookupMalformedRecord(), wantMessage: errMissingText.Error()},
		{name: "record without id", body: `{"data":[{"text":"x"}]}`, wantMessage: errMissingID.Error()},
		{name: "neither variant", body: fixtures.LookupEmpty(), wantMessage: errNoVariant.Error()},
		{name: "error without detail", body: `{"errors":[{"title":"T"}]}`, wantMessage: errMissingDetail.Error()},
		{name: "error without title", body: `{"errors":[{"detail":"D"}]}`, wantMessage: errMissingTitle.Error()},
		{name: "json null", body: `null`, wantMessage: errNoVariant.Error()},
		{name: "id is a number", body: `{"data":[{"id":1,"text":"x"}]}`, wantMessage: "decode tweet record"},
		{name: "top level array", body: `[1,2,3]`, wantMessage: "decode lookup envelope"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			result, err := parseLookup(200, []byte(tc.body))

			// Assert
			require.NoError(t, err, "extraction faults must not escape as errors")
			failure, ok := result.Failure()
			require.True(t, ok)
			assert.Contains(t, failure.Message, tc.wantMessage)
			assert.Contains(t, failure.Error, "upstream status 200")
		})
	}
}

func TestParseLookup_ExtractionFault_TruncatesDiagnosticBody(t *testing.T) {
	body := `{"meta":"` + strings.Repeat("x", 4*maxDiagnosticBody) + `"}`

	result, err := parseLookup(200, []byte(body))

	require.NoError(t, err)
	failure, _ := result.Failure()
	assert.Less(t, len(failure.Error), 2*maxDiagnosticBody)
	assert.True(t, strings.HasSuffix(failure.Error, "...)"), "diagnostic should mark truncation: %q", failure.Error)
}

func TestParseLookup_NotJSON_IsUpstreamUnreachable(t *testing.T) {
	_, err := parseLookup(502, []byte(fixtures.LookupNotJSON()))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnreachable))
}
