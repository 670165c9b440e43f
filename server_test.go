package rplot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func jsonbody(r io.Reader, t interface{}) interface{} {
	if data, err := ioutil.ReadAll(r); err == nil {
		if err := json.Unmarshal(data, &t); err == nil {
			return t
		}
	}

	return nil
}

func testServer(t *testing.T) *Server {
	dataset := openTestDataset(t)
	base := time.Now().Add(-30 * time.Minute).Truncate(time.Minute)

	for i := 0; i < 3; i++ {
		metric := NewMetric(fmt.Sprintf("rplot.test.servertest.event%d,test=one,crud=yes,age=2,factor=3.14", i))

		for j := 0; j < 10; j++ {
			metric.Push(base.Add(time.Duration(j)*time.Minute), float64(1.2*float64(j+1)))
		}

		require.NoError(t, dataset.WriteMetric(metric))
	}

	return NewServer(dataset)
}

func get(server *Server, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(`GET`, url, nil))
	return recorder
}

func TestServerList(t *testing.T) {
	assert := require.New(t)

	response := get(testServer(t), `/metrics/list?palette=rplot`)
	assert.Equal(200, response.Code)

	body, ok := jsonbody(response.Body, make([]interface{}, 0)).([]interface{})
	assert.True(ok)
	assert.Len(body, 3)
	assert.Equal(map[string]interface{}{
		`name`: `rplot.test.servertest.event0`,
		`tags`: map[string]interface{}{
			`age`:    float64(2),
			`crud`:   true,
			`factor`: 3.14,
			`test`:   `one`,
		},
		`metadata`: map[string]interface{}{
			`color`: `#ff0000`,
		},
		`unique_name`: `rplot.test.servertest.event0,age=2,crud=true,factor=3.14,test=one`,
	}, body[0])
}

func TestServerQuery(t *testing.T) {
	assert := require.New(t)

	response := get(testServer(t), `/metrics/query/rplot.test.servertest.event0**;rplot.test.servertest.event1**?from=-1h`)
	assert.Equal(200, response.Code)

	var metrics []map[string]interface{}
	assert.NoError(json.Unmarshal(response.Body.Bytes(), &metrics))
	assert.Len(metrics, 2)
	assert.Equal(`rplot.test.servertest.event0`, metrics[0][`name`])
	assert.Len(metrics[0][`points`], 10)

	// ten one-minute points consolidated into five-minute buckets
	response = get(testServer(t), `/metrics/query/rplot.test.servertest.event0**?from=-1h&interval=5m&fn=max`)
	assert.Equal(200, response.Code)

	metrics = nil
	assert.NoError(json.Unmarshal(response.Body.Bytes(), &metrics))
	assert.Len(metrics[0][`points`], 2)

	response = get(testServer(t), `/metrics/query/rplot.test.servertest.event0**?from=-1h&interval=5m&fn=bogus`)
	assert.Equal(400, response.Code)

	response = get(testServer(t), `/metrics/query/rplot.test.servertest.event0**?from=-1h&interval=soon`)
	assert.Equal(400, response.Code)
}

func TestServerSummary(t *testing.T) {
	assert := require.New(t)

	response := get(testServer(t), `/metrics/summary/rplot.test.servertest.event2**?from=-1h&fn=count,max`)
	assert.Equal(200, response.Code)

	var summary []metricSummary
	assert.NoError(json.Unmarshal(response.Body.Bytes(), &summary))
	assert.Len(summary, 1)
	assert.Equal(`rplot.test.servertest.event2`, summary[0].Name)
	assert.Equal(float64(10), summary[0].Statistics[`count`])
	assert.InDelta(12, summary[0].Statistics[`maximum`], 1e-9)
}

func TestServerGraph(t *testing.T) {
	assert := require.New(t)

	server := testServer(t)

	response := get(server, `/metrics/graph/rplot.test.servertest.**?from=-1h&title=Events&width=500&height=250&palette=munin&fn=mean`)
	assert.Equal(200, response.Code)
	assert.Equal(`image/png`, response.Header().Get(`Content-Type`))
	assert.True(bytes.HasPrefix(response.Body.Bytes(), []byte("\x89PNG")))

	response = get(server, `/metrics/graph/rplot.test.servertest.**?from=-1h&format=svg&ymin=0&ymax=100&markers=2&calendar=true`)
	assert.Equal(200, response.Code)
	assert.Equal(`image/svg+xml`, response.Header().Get(`Content-Type`))
	assert.Contains(response.Body.String(), `<svg`)

	response = get(server, `/metrics/graph/rplot.test.nothing?from=-1h`)
	assert.Equal(404, response.Code)

	response = get(server, `/metrics/graph/rplot.test.servertest.**?from=-1h&format=gif`)
	assert.Equal(400, response.Code)

	response = get(server, `/metrics/graph/rplot.test.servertest.**?from=-1h&ymin=10&ymax=1`)
	assert.Equal(400, response.Code)
}

func TestServerDemo(t *testing.T) {
	assert := require.New(t)

	response := get(testServer(t), `/demo?format=svg&title=Demo`)
	assert.Equal(200, response.Code)
	assert.Contains(response.Body.String(), `<svg`)
}

func TestServerUnknownAction(t *testing.T) {
	assert := require.New(t)

	response := get(testServer(t), `/metrics/explode/rplot.test.servertest.**`)
	assert.Equal(404, response.Code)
}
