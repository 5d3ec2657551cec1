package catalog_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/scaffoldkit/scaffold"
	"github.com/scaffoldkit/scaffold/catalog"
	"github.com/stretchr/testify/suite"
)

type CatalogTestSuite struct {
	suite.Suite
}

func (suite *CatalogTestSuite) TestLoadFile() {
	c, err := catalog.LoadFile("testdata/libs.versions.toml")
	suite.Require().Nil(err)
	suite.Equal([]string{
		"com.fasterxml.jackson.core:jackson-databind",
		"io.micronaut.application",
		"io.micronaut:micronaut-http-server-netty",
		"org.spockframework:spock-core",
	}, c.Coordinates())

	for coordinate, expected := range map[string]string{
		"io.micronaut:micronaut-http-server-netty":    "4.4.3",
		"com.fasterxml.jackson.core:jackson-databind": "2.17.1",
		"org.spockframework:spock-core":               "2.3-groovy-4.0",
		"io.micronaut.application":                    "4.4.0",
	} {
		version, err := c.ResolveVersion(coordinate)
		suite.Nil(err)
		suite.Equal(expected, version, coordinate)
	}
}

func (suite *CatalogTestSuite) TestLoad() {
	fsys := fstest.MapFS{
		"gradle/libs.versions.toml": {Data: []byte(`
[libraries]
junit = { module = "org.junit.jupiter:junit-jupiter-api", version = "5.10.2" }
`)},
	}
	c, err := catalog.Load(fsys, "gradle/libs.versions.toml")
	suite.Require().Nil(err)
	version, err := c.ResolveVersion("org.junit.jupiter:junit-jupiter-api")
	suite.Nil(err)
	suite.Equal("5.10.2", version)

	_, err = catalog.Load(fsys, "missing.toml")
	suite.NotNil(err)
}

func (suite *CatalogTestSuite) TestUnresolved() {
	c := catalog.New(map[string]string{"io.micronaut:micronaut-runtime": "4.4.3"})
	_, err := c.ResolveVersion("io.micronaut:micronaut-inject")
	var unresolved *scaffold.UnresolvedCoordinateError
	suite.True(errors.As(err, &unresolved))
	suite.Equal("io.micronaut:micronaut-inject", unresolved.Coordinate)
}

func (suite *CatalogTestSuite) TestMalformed() {
	suite.Run("Syntax", func() {
		_, err := catalog.Parse([]byte("[libraries"))
		suite.ErrorIs(err, catalog.ErrMalformedCatalog)
	})

	suite.Run("Unknown Ref", func() {
		_, err := catalog.Parse([]byte(`
[libraries]
netty = { module = "io.micronaut:micronaut-http-server-netty", version.ref = "micronaut" }
`))
		suite.ErrorIs(err, catalog.ErrMalformedCatalog)
		suite.ErrorContains(err, `unknown version ref "micronaut"`)
	})

	suite.Run("Every Problem", func() {
		_, err := catalog.Parse([]byte(`
[libraries]
nameless = { version = "1.0" }
unversioned = { module = "a:b" }

[plugins]
idless = { version = "1.0" }
`))
		suite.ErrorIs(err, catalog.ErrMalformedCatalog)
		suite.ErrorContains(err, `library "nameless" has no module`)
		suite.ErrorContains(err, `library "unversioned": missing version`)
		suite.ErrorContains(err, `plugin "idless" has no id`)
	})
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
