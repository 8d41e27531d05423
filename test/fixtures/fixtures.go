// Package fixtures provides upstream response bodies for tests.
package fixtures

import "fmt"

// ExistingTweetID is a 19-character id the fixtures resolve successfully.
const ExistingTweetID = "1234567890123456789"

// MissingTweetID is a 19-character id the fixtures report as not found.
const MissingTweetID = "0000000000000000000"

// LookupFound is the data variant for a single resolved tweet.
func LookupFound(id, text string) string {
	return fmt.Sprintf(`{"data":[{"id":%q,"text":%q,"edit_history_tweet_ids":[%q]}]}`, id, text, id)
}

// LookupFoundMany is the data variant with more than one record.
func LookupFoundMany() string {
	return `{"data":[
		{"id":"1111111111111111111","text":"first"},
		{"id":"2222222222222222222","text":"second"}
	]}`
}

// LookupNotFound is the errors variant the upstream returns with HTTP 200
// for an id that does not exist.
func LookupNotFound(id string) string {
	return fmt.Sprintf(`{"errors":[{
		"value":%q,
		"detail":"Could not find tweet with ids: [%s].",
		"title":"Not Found Error",
		"resource_type":"tweet",
		"parameter":"ids",
		"resource_id":%q,
		"type":"https://api.twitter.com/2/problems/resource-not-found"
	}]}`, id, id, id)
}

// LookupInvalidID is the errors variant for an id the upstream rejects.
func LookupInvalidID(id string) string {
	return fmt.Sprintf(`{"errors":[{
		"parameters":{"ids":[%q]},
		"message":"The ids query parameter value [%s] is not valid",
		"title":"Invalid Request",
		"detail":"One or more parameters to your request was invalid.",
		"type":"https://api.twitter.com/2/problems/invalid-request"
	}]}`, id, id)
}

// LookupUnauthorized is the top-level problem object sent with HTTP 401.
func LookupUnauthorized() string {
	return `{"title":"Unauthorized","type":"about:blank","status":401,"detail":"Unauthorized"}`
}

// LookupMalformedRecord has a data variant whose record lacks text.
func LookupMalformedRecord() string {
	return `{"data":[{"id":"1234567890123456789"}]}`
}

// LookupEmpty is a JSON object with neither variant.
func LookupEmpty() string {
	return `{"meta":{"result_count":0}}`
}

// LookupNotJSON is what a proxy in front of the upstream might return.
func LookupNotJSON() string {
	return `<html><body>502 Bad Gateway</body></html>`
}

// SentimentRequest is the body the sentiment endpoint accepts.
func SentimentRequest(doc string) string {
	return fmt.Sprintf(`{"doc":%q}`, doc)
}
