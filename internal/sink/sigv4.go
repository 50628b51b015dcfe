package sink

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	v4 "github.com/aws/aws-sdk-go/aws/signer/v4"
)

// OpenSearchService is the signing name of Amazon OpenSearch Service.
const OpenSearchService = "es"

// SigningRoundTripper signs every request with AWS Signature Version 4.
type SigningRoundTripper struct {
	transport http.RoundTripper
	signer    *v4.Signer
	service   string
	region    string
}

// NewSigningRoundTripper loads credentials from the default AWS chain
// (environment, shared config, instance role).
func NewSigningRoundTripper(transport http.RoundTripper, region, service string) (*SigningRoundTripper, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("AWS session initialization failed: %w", err)
	}
	if _, err = sess.Config.Credentials.Get(); err != nil {
		return nil, fmt.Errorf("AWS session initialized, but credentials are not loaded correctly: %w", err)
	}
	return NewSigningRoundTripperWithCredentials(transport, sess.Config.Credentials, region, service), nil
}

func NewSigningRoundTripperWithCredentials(transport http.RoundTripper, creds *credentials.Credentials, region, service string) *SigningRoundTripper {
	return &SigningRoundTripper{
		transport: transport,
		signer:    v4.NewSigner(creds),
		service:   service,
		region:    region,
	}
}

func (si *SigningRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// the signer rewrites headers and body, keep the caller's request intact
	signed := req.Clone(req.Context())

	var body io.ReadSeeker
	if req.Body != nil {
		content, err := ioutil.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(content)
	}

	if _, err := si.signer.Sign(signed, body, si.service, si.region, time.Now()); err != nil {
		return nil, fmt.Errorf("cannot sign request: %w", err)
	}
	log.Tracef("signed %s %s for %s/%s", signed.Method, signed.URL.Path, si.service, si.region)

	return si.transport.RoundTrip(signed)
}
