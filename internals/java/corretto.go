package java

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/minepkg/assetguard/internals/platform"
)

// CorrettoBase is the url prefix of the "latest" corretto downloads
var CorrettoBase = "https://corretto.aws/downloads/latest"

// LookupTimeout bounds the corretto HEAD request
const LookupTimeout = 2500 * time.Millisecond

func correttoURL(major uint8, os platform.OS) string {
	osName, ext := "linux", "tar.gz"
	switch os {
	case platform.Windows:
		osName, ext = "windows", "zip"
	case platform.OSX:
		osName = "macos"
	}
	return fmt.Sprintf("%s/amazon-corretto-%d-x64-%s-jdk.%s", CorrettoBase, major, osName, ext)
}

// latestCorretto only checks that the download exists, the size is taken from Content-Length
func (p *Provider) latestCorretto(ctx context.Context, major uint8) (*Release, error) {
	ctx, cancel := context.WithTimeout(ctx, LookupTimeout)
	defer cancel()

	u := correttoURL(major, p.platform.OS)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := p.http.Do(req)
	if err != nil {
		p.log.WithError(err).Debug("corretto lookup failed")
		return nil, nil
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, nil
	}

	// unknown lengths are reported as -1
	size := res.ContentLength
	if size < 0 {
		size = 0
	}
	return &Release{URI: u, Size: size, Name: path.Base(u)}, nil
}
