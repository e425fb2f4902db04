package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/criteria-go/internal/config"
	"github.com/nrfta/criteria-go/opaque"
	"github.com/nrfta/criteria-go/paging"
	"github.com/nrfta/criteria-go/plain"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	load := func(opts ...config.Option) *config.Config {
		opts = append([]config.Option{
			config.WithSearchPaths(dir),
			config.WithEnvFile(filepath.Join(dir, ".env")),
		}, opts...)
		cfg, err := config.Load(opts...)
		Expect(err).ToNot(HaveOccurred())
		return cfg
	}

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	Describe("defaults", func() {
		It("should use the built-in defaults without a config file", func() {
			cfg := load()

			Expect(cfg.File()).To(BeEmpty())
			Expect(cfg.CodecName()).To(Equal(plain.Name))
			Expect(cfg.ServerAddr()).To(Equal(":8080"))
			Expect(cfg.LogLevel()).To(Equal("info"))
			Expect(cfg.StrictSize()).To(BeFalse())

			pc := cfg.PageConfig()
			Expect(pc.DefaultSize).To(Equal(paging.DefaultPageSize))
			Expect(pc.MaxSize).To(Equal(paging.DefaultMaxPageSize))
			Expect(pc.DefaultSorts).To(BeEmpty())
		})
	})

	Describe("config file", func() {
		It("should read criteria.yaml from the search path", func() {
			writeFile("criteria.yaml", `
codec: opaque
paging:
  default_size: 10
  max_size: 50
  default_sorts: ["-createdAt", "title"]
server:
  addr: ":9090"
`)
			cfg := load()

			Expect(cfg.File()).To(HaveSuffix("criteria.yaml"))
			Expect(cfg.CodecName()).To(Equal(opaque.Name))
			Expect(cfg.ServerAddr()).To(Equal(":9090"))

			pc := cfg.PageConfig()
			Expect(pc.DefaultSize).To(Equal(10))
			Expect(pc.MaxSize).To(Equal(50))
			Expect(pc.DefaultSorts).To(Equal([]paging.Sort{paging.Desc("createdAt"), paging.Asc("title")}))
		})

		It("should fail on an explicit file that does not exist", func() {
			_, err := config.Load(config.WithFile(filepath.Join(dir, "missing.yaml")), config.WithEnvFile(""))
			Expect(err).To(HaveOccurred())
		})

		It("should fail on an unreadable config file", func() {
			writeFile("criteria.yaml", "paging: [unclosed")
			_, err := config.Load(config.WithSearchPaths(dir), config.WithEnvFile(""))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("environment", func() {
		It("should let CRITERIA_ variables override the file", func() {
			writeFile("criteria.yaml", "codec: opaque\n")
			GinkgoT().Setenv("CRITERIA_CODEC", "plain")
			GinkgoT().Setenv("CRITERIA_PAGING_MAX_SIZE", "30")
			GinkgoT().Setenv("CRITERIA_PAGING_STRICT_SIZE", "true")

			cfg := load()
			Expect(cfg.CodecName()).To(Equal(plain.Name))
			Expect(cfg.PageConfig().MaxSize).To(Equal(30))
			Expect(cfg.StrictSize()).To(BeTrue())
		})

		It("should load variables from the .env file", func() {
			GinkgoT().Setenv("CRITERIA_DATABASE_URL", "")
			Expect(os.Unsetenv("CRITERIA_DATABASE_URL")).To(Succeed())
			writeFile(".env", "CRITERIA_DATABASE_URL=postgres://localhost/criteria\n")

			cfg := load()
			Expect(cfg.DatabaseURL()).To(Equal("postgres://localhost/criteria"))
		})

		It("should ignore a missing .env file", func() {
			_, err := config.Load(config.WithSearchPaths(dir), config.WithEnvFile(filepath.Join(dir, "nope.env")))
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Set", func() {
		It("should override loaded values", func() {
			cfg := load()
			cfg.Set(config.KeyDefaultSize, 5)
			Expect(cfg.PageConfig().DefaultSize).To(Equal(5))
		})
	})

	Describe("CodecFor", func() {
		It("should select codecs by name", func() {
			codec, err := config.CodecFor("plain")
			Expect(err).ToNot(HaveOccurred())
			Expect(codec.Name()).To(Equal(plain.Name))

			codec, err = config.CodecFor(" OPAQUE ")
			Expect(err).ToNot(HaveOccurred())
			Expect(codec.Name()).To(Equal(opaque.Name))
		})

		It("should reject unknown names", func() {
			_, err := config.CodecFor("xml")
			Expect(err).To(MatchError(ContainSubstring(`unknown codec "xml"`)))
		})
	})
})
