package gen

import (
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/translator"
	"github.com/syssam/tablegen/config"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, "", c.Header)
	})
}

func TestWithPackageAndTarget(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithPackage("github.com/org/project/models")(c))
	require.NoError(t, WithTarget("./models")(c))
	assert.Equal(t, "github.com/org/project/models", c.Package)
	assert.Equal(t, "./models", c.Target)

	err := WithPackage("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	err = WithTarget("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestPackageName(t *testing.T) {
	p, err := config.Load(stringsReader("name: shop\npackageName: github.com/org/shop/entities\n"))
	require.NoError(t, err)

	assert.Equal(t, "models", (&Config{}).PackageName(nil))
	assert.Equal(t, "entities", (&Config{}).PackageName(p))
	assert.Equal(t, "db", (&Config{Package: "github.com/org/db"}).PackageName(p))
}

func TestFeatures(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := MustNewConfig()
		enabled, err := c.FeatureEnabled(FeatureJSON.Name)
		require.NoError(t, err)
		assert.True(t, enabled)

		enabled, err = c.FeatureEnabled(FeatureInboundFinders.Name)
		require.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("enable and disable", func(t *testing.T) {
		c := MustNewConfig(
			WithFeatures(FeatureInboundFinders),
			WithoutFeatures(FeatureJSON),
		)
		enabled, _ := c.FeatureEnabled(FeatureInboundFinders.Name)
		assert.True(t, enabled)
		enabled, _ = c.FeatureEnabled(FeatureJSON.Name)
		assert.False(t, enabled)
	})

	t.Run("by name", func(t *testing.T) {
		c := MustNewConfig(WithFeatureNames("manifest"))
		enabled, _ := c.FeatureEnabled(FeatureManifest.Name)
		assert.True(t, enabled)

		_, err := NewConfig(WithFeatureNames("privacy"))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.ErrorIs(t, err, ErrUnknownFeature)
	})

	t.Run("disable by name", func(t *testing.T) {
		c := MustNewConfig(WithoutFeatureNames("json"))
		enabled, err := c.FeatureEnabled(FeatureJSON.Name)
		require.NoError(t, err)
		assert.False(t, enabled)

		_, err = NewConfig(WithoutFeatureNames("privacy"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingConfig)
		assert.ErrorIs(t, err, ErrUnknownFeature)
		assert.ErrorContains(t, err, `config error for "Features" (value: privacy): tablegen: unknown feature`)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := MustNewConfig().FeatureEnabled("privacy")
		assert.ErrorIs(t, err, ErrMissingConfig)
		assert.ErrorIs(t, err, ErrUnknownFeature)
		assert.Contains(t, err.Error(), ErrUnknownFeature.Error())
	})

	t.Run("lookup", func(t *testing.T) {
		f, ok := FeatureByName("inbound")
		require.True(t, ok)
		assert.Equal(t, Beta, f.Stage)
		_, ok = FeatureByName("nope")
		assert.False(t, ok)
	})

	t.Run("stages", func(t *testing.T) {
		assert.Equal(t, "experimental", Experimental.String())
		assert.Equal(t, "alpha", FeatureManifest.Stage.String())
		assert.Equal(t, "stable", FeatureJSON.Stage.String())
		assert.Equal(t, "unknown", FeatureStage(0).String())
	})
}

func TestWithWorkers(t *testing.T) {
	c := MustNewConfig()
	assert.Equal(t, runtime.GOMAXPROCS(0), c.workers())

	require.NoError(t, WithWorkers(3)(c))
	assert.Equal(t, 3, c.workers())

	err := WithWorkers(0)(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithLogger(t *testing.T) {
	c := MustNewConfig()
	assert.NotNil(t, c.logger(), "a discarding logger is the default")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, WithLogger(logger)(c))
	assert.Same(t, logger, c.logger())

	assert.Error(t, WithLogger(nil)(c))
}

func TestWithDecorators(t *testing.T) {
	c := &Config{}
	noop := func(TranslatorKind, *translator.Translator) {}
	require.NoError(t, WithDecorators(noop, noop)(c))
	assert.Len(t, c.Decorators, 2)

	err := WithDecorators(nil)(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithTypeMapping(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTypeMapping("MONEY", ParseGoType("github.com/org/money.Amount"))(c))
	got, ok := c.typeMapping("money")
	require.True(t, ok)
	assert.Equal(t, GoType{PkgPath: "github.com/org/money", Name: "Amount"}, got)

	assert.Error(t, WithTypeMapping("", TypeInt)(c))
	assert.Error(t, WithTypeMapping("money", GoType{})(c))
}

func TestApply(t *testing.T) {
	t.Run("applies all options", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithTarget("./out"),
			WithPackage("example.com/out"),
			WithHeader("Header"),
		)

		require.NoError(t, err)
		assert.Equal(t, "./out", c.Target)
		assert.Equal(t, "example.com/out", c.Package)
		assert.Equal(t, "Header", c.Header)
	})

	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithTarget(""),
			WithPackage("example.com/out"),
		)

		require.Error(t, err)
		assert.Empty(t, c.Package)
	})
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(
		WithTarget(""),
		WithPackage(""),
		WithHeader("Header"),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "Package")
	assert.Equal(t, "Header", c.Header)
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultHeader, c.Header)

	_, err = NewConfig(WithTarget(""))
	require.Error(t, err)

	assert.Panics(t, func() { MustNewConfig(WithWorkers(-1)) })
}

func TestTranslatorKindString(t *testing.T) {
	assert.Equal(t, "entity", KindEntity.String())
	assert.Equal(t, "impl", KindImpl.String())
	assert.Equal(t, "manager", KindManager.String())
	assert.Equal(t, "application", KindApplication.String())
	assert.Equal(t, "unknown", TranslatorKind(9).String())
}
