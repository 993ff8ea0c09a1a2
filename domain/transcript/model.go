package transcript

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ModelTier is a named size class of a pretrained speech-recognition model
type ModelTier string

// Whisper model tiers, smallest first
const (
	TierTiny         ModelTier = "tiny"
	TierTinyEN       ModelTier = "tiny.en"
	TierBase         ModelTier = "base"
	TierBaseEN       ModelTier = "base.en"
	TierSmall        ModelTier = "small"
	TierSmallEN      ModelTier = "small.en"
	TierMedium       ModelTier = "medium"
	TierMediumEN     ModelTier = "medium.en"
	TierLarge        ModelTier = "large"
	TierLargeV1      ModelTier = "large-v1"
	TierLargeV2      ModelTier = "large-v2"
	TierLargeV3      ModelTier = "large-v3"
	TierLargeV3Turbo ModelTier = "large-v3-turbo"
	TierTurbo        ModelTier = "turbo"
)

// DefaultModelTier balances accuracy and CPU cost for non-English speech
const DefaultModelTier = TierSmall

// TierInfo describes the cost/accuracy tradeoff of a tier
type TierInfo struct {
	Tier        ModelTier
	Parameters  string
	SizeLabel   string
	Description string
}

var tierCatalog = []TierInfo{
	{TierTiny, "39M", "~75 MB", "Fastest; too inaccurate for most non-English speech."},
	{TierTinyEN, "39M", "~75 MB", "Fastest, English-only."},
	{TierBase, "74M", "~142 MB", "Minimum recommended tier for non-English speech."},
	{TierBaseEN, "74M", "~142 MB", "Balanced speed/quality, English-only."},
	{TierSmall, "244M", "~466 MB", "Good accuracy at moderate CPU cost."},
	{TierSmallEN, "244M", "~466 MB", "Good accuracy, English-only."},
	{TierMedium, "769M", "~1.5 GB", "High accuracy, slow on CPU."},
	{TierMediumEN, "769M", "~1.5 GB", "High accuracy, English-only."},
	{TierLarge, "1550M", "~2.9 GB", "Alias for the newest large model."},
	{TierLargeV1, "1550M", "~2.9 GB", "First large release."},
	{TierLargeV2, "1550M", "~2.9 GB", "Highest accuracy class; large download."},
	{TierLargeV3, "1550M", "~2.9 GB", "Highest accuracy class; large download."},
	{TierLargeV3Turbo, "809M", "~1.5 GB", "Near large-v3 accuracy, much faster."},
	{TierTurbo, "809M", "~1.5 GB", "Alias for large-v3-turbo."},
}

// Tiers returns the catalog of known tiers, smallest first
func Tiers() []TierInfo {
	return append([]TierInfo(nil), tierCatalog...)
}

// ParseModelTier validates a tier name (case-insensitive)
func ParseModelTier(s string) (ModelTier, error) {
	name := ModelTier(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return DefaultModelTier, nil
	}
	if _, ok := lo.Find(tierCatalog, func(info TierInfo) bool { return info.Tier == name }); !ok {
		names := lo.Map(tierCatalog, func(info TierInfo, _ int) string { return string(info.Tier) })
		return "", fmt.Errorf("unknown model tier %q (valid: %s)", s, strings.Join(names, ", "))
	}
	return name, nil
}

// EnglishOnly returns true for the .en tiers
func (t ModelTier) EnglishOnly() bool {
	return strings.HasSuffix(string(t), ".en")
}

// SuitableFor reports whether the tier is a sensible choice for lang.
// English-only tiers cannot transcribe other languages and the tiny tier
// is too inaccurate for them.
func (t ModelTier) SuitableFor(lang Language) bool {
	if lang == English {
		return true
	}
	return !t.EnglishOnly() && t != TierTiny
}

func (t ModelTier) String() string {
	return string(t)
}
