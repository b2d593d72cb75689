package binary

import (
	"fmt"

	"github.com/tobyhq/tobyup/internal/platform"
)

// defaultDownloadBase is the host release assets are served from.
// Full asset URL: {base}/{repo}/releases/download/{tag}/{asset}
const defaultDownloadBase = "https://github.com"

// AssetName constructs the release archive filename for a platform.
// Pattern: tobycli_{OS}_{Arch}.tar.gz, e.g. tobycli_Linux_x86_64.tar.gz
func AssetName(info *platform.Info) string {
	return fmt.Sprintf("%s_%s_%s.tar.gz", ProjectName, info.OSTag, info.ArchTag)
}

// assetURL constructs the download URL for a named release asset.
func assetURL(base, repo, tag, name string) string {
	return fmt.Sprintf("%s/%s/releases/download/%s/%s", base, repo, tag, name)
}
