package sink_test

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/golang/snappy"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/prometheus/prompb"

	"github.com/project-flotta/sys-metrics-sim/internal/sink"
)

func decodeRequest(req []byte) prompb.WriteRequest {
	decoded, err := snappy.Decode(nil, req)
	Expect(err).NotTo(HaveOccurred())
	writeRequest := prompb.WriteRequest{}
	Expect(writeRequest.Unmarshal(decoded)).To(Succeed())
	return writeRequest
}

func labelMap(ts prompb.TimeSeries) map[string]string {
	res := map[string]string{}
	for _, l := range ts.Labels {
		res[l.Name] = l.Value
	}
	return res
}

var _ = Describe("remote write", func() {
	var (
		mockCtrl    *gomock.Controller
		writeClient *sink.MockWriteClient
		remoteWrite *sink.RemoteWrite
		ctx         = context.Background()
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		writeClient = sink.NewMockWriteClient(mockCtrl)
		remoteWrite = sink.NewRemoteWriteWithClient("http://receiver", "metrics-sim", writeClient)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("sends one series per field", func() {
		// given
		var sent []byte
		writeClient.EXPECT().Write(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, data []byte) error {
				sent = data
				return nil
			}).Times(1)

		// when
		err := remoteWrite.Write(ctx, newDocument("host-A"))

		// then
		Expect(err).NotTo(HaveOccurred())
		req := decodeRequest(sent)
		Expect(req.Timeseries).To(HaveLen(3))

		values := map[string]float64{}
		for _, ts := range req.Timeseries {
			lbls := labelMap(ts)
			Expect(lbls).To(HaveKeyWithValue(sink.LabelHostName, "host-A"))
			Expect(lbls).To(HaveKeyWithValue(sink.LabelIndex, "metrics-sim"))
			Expect(ts.Labels[0].Name).To(Equal("__name__"))
			Expect(ts.Samples).To(HaveLen(1))
			Expect(ts.Samples[0].Timestamp).To(Equal(documentTime.UnixNano() / int64(time.Millisecond)))
			values[lbls["__name__"]] = ts.Samples[0].Value
		}
		Expect(values).To(Equal(map[string]float64{
			sink.MetricCPUPct:      0.5,
			sink.MetricMemoryFree:  200000,
			sink.MetricMemoryTotal: 1000000,
		}))
	})

	It("turns document labels into valid label names", func() {
		// given
		doc := newDocument("host-C")
		doc.Labels = map[string]string{"rack.zone": "eu-1", "9lives": "yes", "host_name": "ignored"}
		var sent []byte
		writeClient.EXPECT().Write(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, data []byte) error {
				sent = data
				return nil
			})

		// when
		Expect(remoteWrite.Write(ctx, doc)).To(Succeed())

		// then
		lbls := labelMap(decodeRequest(sent).Timeseries[0])
		Expect(lbls).To(HaveKeyWithValue("rack_zone", "eu-1"))
		Expect(lbls).To(HaveKeyWithValue("_9lives", "yes"))
		Expect(lbls).To(HaveKeyWithValue("host_name", "host-C"))
	})

	It("reports client failures unchanged", func() {
		// given
		storeErr := errors.New("server returned HTTP status 503 Service Unavailable")
		writeClient.EXPECT().Write(gomock.Any(), gomock.Any()).Return(storeErr).Times(1)

		// when
		err := remoteWrite.Write(ctx, newDocument("host-A"))

		// then
		Expect(err).To(MatchError(ContainSubstring("remote write to")))
		Expect(errors.Is(err, storeErr)).To(BeTrue())
	})

	Context("against a receiver", func() {
		var (
			server  *httptest.Server
			status  int
			payload []byte
		)

		BeforeEach(func() {
			status = http.StatusNoContent
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				payload, _ = ioutil.ReadAll(r.Body)
				w.WriteHeader(status)
			}))
		})

		AfterEach(func() {
			server.Close()
		})

		It("stores the samples", func() {
			// given
			u, err := url.Parse(server.URL + "/api/v1/write")
			Expect(err).NotTo(HaveOccurred())
			rw, err := sink.NewRemoteWrite(u, "metrics-sim", 5*time.Second)
			Expect(err).NotTo(HaveOccurred())

			// when
			err = rw.Write(ctx, newDocument("host-B"))

			// then
			Expect(err).NotTo(HaveOccurred())
			Expect(decodeRequest(payload).Timeseries).To(HaveLen(3))
		})

		It("fails on a server error", func() {
			// given
			status = http.StatusInternalServerError
			u, err := url.Parse(server.URL)
			Expect(err).NotTo(HaveOccurred())
			rw, err := sink.NewRemoteWrite(u, "metrics-sim", 5*time.Second)
			Expect(err).NotTo(HaveOccurred())

			// then
			Expect(rw.Write(ctx, newDocument("host-B"))).NotTo(Succeed())
		})
	})
})
