//go:build cgo && swupdate && swupdate_fake

package libswupdate

// In-process stand-in for libswupdate, selected with the swupdate_fake tag.
// It runs each session on its own pthread and drives the exported callbacks
// the way the library's worker thread does.

/*
#cgo LDFLAGS: -pthread
#include <pthread.h>
#include <stdlib.h>
#include <string.h>
#include <sys/types.h>

typedef int (*swu_writedata)(char **buf, int *size);
typedef int (*swu_getstatus)(void *msg);
typedef int (*swu_terminated)(int status);

struct fake_state {
	swu_writedata wr;
	swu_getstatus get;
	swu_terminated end;

	int start_rc;
	int cmd_rc;
	int result;
	void *status_msg;
	size_t req_size;
	unsigned int api_version;

	long long bytes;
	long long chunks;
	unsigned long long sum;
	int last_rc;
	int last_size;
	int bad_buffer;
	int prepared;
	ssize_t start_size;
	unsigned int start_api;

	char versions[3][256];
	char aes_key[128];
	char aes_ivt[128];
};

static struct fake_state fake;

static void fake_copy(char *dst, size_t cap, const char *src)
{
	if (!src)
		src = "";
	strncpy(dst, src, cap - 1);
	dst[cap - 1] = '\0';
}

static void *fake_session(void *arg)
{
	char *buf;
	int size, rc, i;

	(void)arg;
	if (fake.status_msg)
		fake.get(fake.status_msg);

	for (;;) {
		buf = NULL;
		size = -1;
		rc = fake.wr(&buf, &size);
		fake.last_rc = rc;
		fake.last_size = size;
		if (rc <= 0)
			break;
		if (!buf || size != rc) {
			fake.bad_buffer = 1;
			break;
		}
		for (i = 0; i < size; i++)
			fake.sum += (unsigned char)buf[i];
		fake.bytes += size;
		fake.chunks++;
	}

	fake.end(fake.result);
	return NULL;
}

int swupdate_async_start(swu_writedata wr_func, swu_getstatus status_func,
			 swu_terminated end_func, void *priv, ssize_t size)
{
	pthread_t th;

	fake.start_size = size;
	if (priv)
		fake.start_api = *(unsigned int *)priv;
	if (fake.start_rc < 0)
		return fake.start_rc;

	fake.wr = wr_func;
	fake.get = status_func;
	fake.end = end_func;
	if (pthread_create(&th, NULL, fake_session, NULL) != 0)
		return -1;
	pthread_detach(th);
	return 1;
}

void swupdate_prepare_req(void *req)
{
	fake.prepared++;
	memset(req, 0, fake.req_size);
	*(unsigned int *)req = fake.api_version;
}

int swupdate_set_version_range(const char *minversion, const char *maxversion,
			       const char *currentversion)
{
	fake_copy(fake.versions[0], sizeof(fake.versions[0]), minversion);
	fake_copy(fake.versions[1], sizeof(fake.versions[1]), maxversion);
	fake_copy(fake.versions[2], sizeof(fake.versions[2]), currentversion);
	return fake.cmd_rc;
}

int swupdate_set_aes(char *key, char *ivt)
{
	fake_copy(fake.aes_key, sizeof(fake.aes_key), key);
	fake_copy(fake.aes_ivt, sizeof(fake.aes_ivt), ivt);
	return fake.cmd_rc;
}

static void fake_reset(int start_rc, int cmd_rc, int result, void *status_msg,
		       size_t req_size, unsigned int api_version)
{
	free(fake.status_msg);
	memset(&fake, 0, sizeof(fake));
	fake.start_rc = start_rc;
	fake.cmd_rc = cmd_rc;
	fake.result = result;
	fake.status_msg = status_msg;
	fake.req_size = req_size;
	fake.api_version = api_version;
}

static struct fake_state *fake_get(void)
{
	return &fake;
}
*/
import "C"

import (
	"unsafe"

	"github.com/moffa90/go-swupdate/protocol"
)

// fakeScript configures the next fake session.
type fakeScript struct {
	StartCode   int
	CommandCode int
	Result      protocol.RecoveryStatus

	// Status, when set, is delivered before the first read
	Status *protocol.Message
}

// fakeStats is what the fake observed through the callbacks.
type fakeStats struct {
	Bytes     int64
	Chunks    int64
	Sum       uint64
	LastRC    int
	LastSize  int
	BadBuffer bool
	Prepared  int
	StartSize uintptr
	StartAPI  uint32
	Versions  [3]string
	AESKey    string
	AESIVT    string
}

func fakeReset(s fakeScript) {
	var msg unsafe.Pointer
	if s.Status != nil {
		msg = C.CBytes(unsafe.Slice((*byte)(unsafe.Pointer(s.Status)), protocol.MessageSize))
	}
	C.fake_reset(C.int(s.StartCode), C.int(s.CommandCode), C.int(s.Result), msg,
		C.size_t(protocol.RequestSize), C.uint(protocol.APIVersion))
}

func fakeSnapshot() fakeStats {
	f := C.fake_get()
	return fakeStats{
		Bytes:     int64(f.bytes),
		Chunks:    int64(f.chunks),
		Sum:       uint64(f.sum),
		LastRC:    int(f.last_rc),
		LastSize:  int(f.last_size),
		BadBuffer: f.bad_buffer != 0,
		Prepared:  int(f.prepared),
		StartSize: uintptr(f.start_size),
		StartAPI:  uint32(f.start_api),
		Versions: [3]string{
			C.GoString(&f.versions[0][0]),
			C.GoString(&f.versions[1][0]),
			C.GoString(&f.versions[2][0]),
		},
		AESKey: C.GoString(&f.aes_key[0]),
		AESIVT: C.GoString(&f.aes_ivt[0]),
	}
}
