package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load initial content",
}

var seedProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create or update the profile from a YAML file",
	Long: `profile reads a YAML document whose keys match the profile JSON fields
(first_name, last_name, email, title, interests, ...). The profile is created
when missing, otherwise the listed fields are updated.

Example:
  portfolioctl seed profile --file profile.yaml`,
	Args: cobra.NoArgs,
	RunE: runSeedProfile,
}

func init() {
	seedProfileCmd.Flags().StringVar(&seedFile, "file", "", "profile YAML file (required)")
	_ = seedProfileCmd.MarkFlagRequired("file")
	seedCmd.AddCommand(seedProfileCmd)
}

func runSeedProfile(cmd *cobra.Command, args []string) error {
	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	values, err := readProfileSeed(f)
	if err != nil {
		return err
	}

	repos, err := app.repositories()
	if err != nil {
		return err
	}
	profiles := usecase.NewProfileUseCase(app.logger, repos.Transactor, repos.Profile, repos.Project, repos.Skill, nil)

	created, err := seedProfile(cmd.Context(), profiles, values)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(cmd.OutOrStdout(), "Profile created")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
	}
	return nil
}

// seedProfile 프로필이 없으면 생성하고 있으면 values의 필드만 수정합니다.
func seedProfile(ctx context.Context, profiles interfaces.ProfileUseCase, values map[string]interface{}) (bool, error) {
	_, err := profiles.Get(ctx)
	switch {
	case err == nil:
		fields, err := profileFields(values)
		if err != nil {
			return false, err
		}
		_, err = profiles.Update(ctx, fields)
		return false, err
	case apperrors.HasCode(err, apperrors.ErrNotFound):
		profile, err := profileRecord(values)
		if err != nil {
			return false, err
		}
		_, err = profiles.Create(ctx, profile)
		return err == nil, err
	default:
		return false, err
	}
}

// readProfileSeed YAML 문서를 JSON 호환 값으로 읽습니다.
func readProfileSeed(r io.Reader) (map[string]interface{}, error) {
	var values map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("seed file is empty")
	}
	return values, nil
}

// profileRecord JSON 태그를 기준으로 프로필 레코드를 만듭니다.
func profileRecord(values map[string]interface{}) (*entity.Profile, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode profile seed: %w", err)
	}
	var profile entity.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode profile seed: %w", err)
	}
	profile.Record = entity.Record{}
	return &profile, nil
}

// profileFields 부분 수정용 필드 맵. 목록과 객체는 JSON 컬럼 값으로 바꿉니다.
func profileFields(values map[string]interface{}) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(values))
	for name, value := range values {
		switch value.(type) {
		case []interface{}, map[string]interface{}:
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", name, err)
			}
			fields[name] = datatypes.JSON(raw)
		default:
			fields[name] = value
		}
	}
	return fields, nil
}
