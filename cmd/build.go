package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KaramelBytes/nhanes-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/nhanes-cli/internal/config"
	"github.com/KaramelBytes/nhanes-cli/internal/render"
	"github.com/KaramelBytes/nhanes-cli/internal/survey"
)

// buildReport loads the survey table once and emits every report section to s.
func buildReport(ctx context.Context, c *cfgpkg.Global, s render.Surface) (*analysis.Result, error) {
	client := &http.Client{Timeout: time.Duration(c.HTTPTimeoutSec) * time.Second}
	debugf("loading %s (timeout %ds)", c.DataURL, c.HTTPTimeoutSec)
	start := time.Now()
	t, err := survey.Load(ctx, client, c.DataURL)
	if err != nil {
		var se *survey.StatusError
		if errors.As(err, &se) {
			debugf("response body: %s", se.Body)
		}
		return nil, err
	}
	infof("Loaded %d rows x %d columns from %s (%s)", t.Len(), len(t.Names()), c.DataURL, time.Since(start).Round(time.Millisecond))

	res, err := analysis.Run(s, t, analysis.OptionsFromConfig(c))
	if err != nil {
		return nil, err
	}
	debugf("education levels: %d, age groups: %d", len(res.Education), len(res.AgeGroups))
	return res, nil
}
