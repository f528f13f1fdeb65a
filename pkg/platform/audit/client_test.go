package audit

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

// TestDescribeClient tests user-agent parsing for audit display strings.
func (s *ClientSuite) TestDescribeClient() {
	s.Run("empty user agent returns unknown client", func() {
		s.Equal("Unknown Client", DescribeClient(""))
	})

	s.Run("firefox on linux includes browser and OS", func() {
		result := DescribeClient("Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")
		s.Contains(result, "Firefox")
		s.Contains(result, " on ")
		s.Contains(result, "Linux")
	})

	s.Run("safari on iphone includes platform", func() {
		result := DescribeClient("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
		s.Contains(result, " on ")
		s.Contains(result, "iPhone")
	})

	s.Run("unknown user agent is still formatted", func() {
		result := DescribeClient("reviewer-script/1.0")
		s.Contains(result, " on ")
		s.NotContains(result, "  ")
	})
}
